package scan

// Hand-picked subset of the IANA registry at
// https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv
// covering the services scans usually turn up. Ports missing here simply get
// no description. go run ./tools/update-ports.go replaces both tables with the
// full registry.
var knownTCPPorts = map[int]string{
	7:     "echo",
	9:     "discard",
	13:    "daytime",
	19:    "chargen",
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	37:    "time",
	43:    "nicname",
	49:    "tacacs",
	53:    "domain",
	70:    "gopher",
	79:    "finger",
	80:    "http",
	81:    "hosts2-ns",
	82:    "xfer",
	88:    "kerberos",
	102:   "iso-tsap",
	110:   "pop3",
	111:   "sunrpc",
	113:   "ident",
	119:   "nntp",
	123:   "ntp",
	135:   "epmap",
	137:   "netbios-ns",
	139:   "netbios-ssn",
	143:   "imap",
	179:   "bgp",
	194:   "irc",
	389:   "ldap",
	427:   "svrloc",
	443:   "https",
	445:   "microsoft-ds",
	465:   "submissions",
	502:   "mbap",
	512:   "exec",
	513:   "login",
	514:   "shell",
	515:   "printer",
	543:   "klogin",
	544:   "kshell",
	548:   "afpovertcp",
	554:   "rtsp",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	873:   "rsync",
	902:   "ideafarm-door",
	989:   "ftps-data",
	990:   "ftps",
	993:   "imaps",
	995:   "pop3s",
	1080:  "socks",
	1194:  "openvpn",
	1433:  "ms-sql-s",
	1434:  "ms-sql-m",
	1521:  "ncube-lm",
	1723:  "pptp",
	1883:  "mqtt",
	2049:  "nfs",
	2181:  "eforward",
	2375:  "docker",
	2376:  "docker-s",
	3000:  "hbci",
	3128:  "ndl-aas",
	3268:  "msft-gc",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	3690:  "svn",
	4369:  "epmd",
	5060:  "sip",
	5222:  "xmpp-client",
	5432:  "postgresql",
	5672:  "amqp",
	5900:  "rfb",
	5985:  "wsman",
	5986:  "wsmans",
	6379:  "redis",
	6443:  "sun-sr-https",
	6667:  "ircu",
	8000:  "irdmi",
	8008:  "http-alt",
	8080:  "http-alt",
	8443:  "pcsync-https",
	8883:  "secure-mqtt",
	9000:  "cslistener",
	9042:  "cassandra",
	9092:  "XmlIpcRegSvc",
	9100:  "pdl-datastream",
	9200:  "wap-wsp",
	11211: "memcache",
	27017: "mongodb",
}

var knownUDPPorts = map[int]string{
	7:     "echo",
	9:     "discard",
	13:    "daytime",
	19:    "chargen",
	37:    "time",
	49:    "tacacs",
	53:    "domain",
	67:    "bootps",
	68:    "bootpc",
	69:    "tftp",
	88:    "kerberos",
	111:   "sunrpc",
	123:   "ntp",
	137:   "netbios-ns",
	138:   "netbios-dgm",
	161:   "snmp",
	162:   "snmptrap",
	177:   "xdmcp",
	389:   "ldap",
	427:   "svrloc",
	443:   "https",
	500:   "isakmp",
	514:   "syslog",
	520:   "router",
	623:   "asf-rmcp",
	1194:  "openvpn",
	1434:  "ms-sql-m",
	1645:  "sightline",
	1701:  "l2f",
	1812:  "radius",
	1813:  "radius-acct",
	1900:  "ssdp",
	2049:  "nfs",
	3478:  "stun",
	3702:  "ws-discovery",
	4500:  "ipsec-nat-t",
	5060:  "sip",
	5353:  "mdns",
	5683:  "coap",
	11211: "memcache",
	27015: "halflife",
}
