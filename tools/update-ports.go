package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const source = "https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv"

func main() {

	resp, err := http.Get(source)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	tables := map[string]map[int]string{
		"tcp": {},
		"udp": {},
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	for {
		// read one row from csv
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}

		if len(record) < 3 || record[0] == "" || record[1] == "" {
			continue
		}

		table, ok := tables[record[2]]
		if !ok {
			continue
		}

		port, err := strconv.Atoi(record[1])
		if err != nil {
			// ranges such as "6000-6063"
			continue
		}

		if _, exists := table[port]; !exists {
			table[port] = record[0]
		}
	}

	formatted, err := render(tables["tcp"], tables["udp"])
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile("./scan/known.go", formatted, 0o644); err != nil {
		log.Fatal(err)
	}

	log.Infof("Wrote %d tcp and %d udp service names", len(tables["tcp"]), len(tables["udp"]))
}

// render produces the complete scan/known.go source for the given tables.
func render(tcp, udp map[int]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "// Code generated by tools/update-ports.go from %s; DO NOT EDIT.\n\npackage scan\n\n", source)
	writeTable(buf, "knownTCPPorts", tcp)
	buf.WriteString("\n")
	writeTable(buf, "knownUDPPorts", udp)
	return format.Source(buf.Bytes())
}

func writeTable(w io.Writer, name string, table map[int]string) {
	ports := make([]int, 0, len(table))
	for port := range table {
		ports = append(ports, port)
	}
	sort.Ints(ports)

	fmt.Fprintf(w, "var %s = map[int]string{", name)
	for _, port := range ports {
		fmt.Fprintf(w, "\n\t%d: %q,", port, table[port])
	}
	fmt.Fprint(w, "\n}\n")
}
