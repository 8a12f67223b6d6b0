package models

// InterfaceRecord is one router interface row from the addresses table.
type InterfaceRecord struct {
	Interface   string `json:"interface" yaml:"interface"`
	IPv4Addr    string `json:"ipv4_addr" yaml:"ipv4_addr"`
	IPv6Addr    string `json:"ipv6_addr" yaml:"ipv6_addr"`
	Description string `json:"description" yaml:"description"`
}

// RouterInterface pairs a record with the router it was listed under.
type RouterInterface struct {
	RouterName string
	Record     InterfaceRecord
}

type RouterGroup struct {
	RouterName string            `json:"router_name" yaml:"router_name"`
	Interfaces []InterfaceRecord `json:"interfaces" yaml:"interfaces"`
}
