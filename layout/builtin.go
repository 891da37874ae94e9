package layout

import "slices"

// IPv4UDP is an IPv4 header without options followed by a UDP header.
var IPv4UDP = &Layout{
	Name: "ipv4-udp",
	Fields: []Field{
		{Name: "version", Width: 4},
		{Name: "ihl", Width: 4},
		{Name: "tos", Width: 8},
		{Name: "total_length", Width: 16},
		{Name: "identification", Width: 16},
		{Name: "flags", Width: 3},
		{Name: "fragment_offset", Width: 13},
		{Name: "ttl", Width: 8},
		{Name: "protocol", Width: 8},
		{Name: "header_checksum", Width: 16},
		{Name: "src_addr", Width: 32},
		{Name: "dst_addr", Width: 32},
		{Name: "src_port", Width: 16},
		{Name: "dst_port", Width: 16},
		{Name: "udp_length", Width: 16},
		{Name: "udp_checksum", Width: 16},
	},
}

// UUID splits an RFC 4122 UUID into its fields; node is a single 48-bit field.
var UUID = &Layout{
	Name: "uuid",
	Fields: []Field{
		{Name: "time_low", Width: 32},
		{Name: "time_mid", Width: 16},
		{Name: "version", Width: 4},
		{Name: "time_hi", Width: 12},
		{Name: "variant", Width: 2},
		{Name: "clock_seq", Width: 14},
		{Name: "node", Width: 48},
	},
}

var builtins = []*Layout{IPv4UDP, UUID}

// Builtin returns a copy of the built-in layout with the given name.
func Builtin(name string) (*Layout, bool) {
	i := slices.IndexFunc(builtins, func(l *Layout) bool { return l.Name == name })
	if i < 0 {
		return nil, false
	}
	return builtins[i].Clone(), true
}

// Builtins returns copies of all built-in layouts.
func Builtins() []*Layout {
	all := make([]*Layout, 0, len(builtins))
	for _, l := range builtins {
		all = append(all, l.Clone())
	}
	return all
}
