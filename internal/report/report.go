// Package report groups extracted interface records by router and renders
// them in first-seen router order.
package report

import (
	"strconv"
	"strings"

	"ifreport/internal/models"
)

// Group buckets pairs by router name. Buckets appear in the order their
// router was first seen; records keep their input order inside a bucket.
func Group(pairs []models.RouterInterface) []models.RouterGroup {
	index := make(map[string]int, 16)
	groups := make([]models.RouterGroup, 0, 16)

	for _, p := range pairs {
		i, ok := index[p.RouterName]
		if !ok {
			i = len(groups)
			index[p.RouterName] = i
			groups = append(groups, models.RouterGroup{RouterName: p.RouterName})
		}
		groups[i].Interfaces = append(groups[i].Interfaces, p.Record)
	}
	return groups
}

// Format renders groups as report lines: the router name, one line per
// record, then an empty separator line.
func Format(groups []models.RouterGroup) []string {
	n := 0
	for _, g := range groups {
		n += len(g.Interfaces) + 2
	}

	lines := make([]string, 0, n)
	for _, g := range groups {
		lines = append(lines, g.RouterName)
		for i, rec := range g.Interfaces {
			lines = append(lines, recordLine(i, rec))
		}
		lines = append(lines, "")
	}
	return lines
}

// Lines groups and formats in one step.
func Lines(pairs []models.RouterInterface) []string {
	return Format(Group(pairs))
}

// recordLine renders "idx<N>:\t<interface>\t<ipv4>\t<ipv6>\t<description>".
func recordLine(idx int, rec models.InterfaceRecord) string {
	var sb strings.Builder
	sb.Grow(len(rec.Interface) + len(rec.IPv4Addr) + len(rec.IPv6Addr) + len(rec.Description) + 16)
	sb.WriteString("idx")
	sb.WriteString(strconv.Itoa(idx))
	sb.WriteString(":\t")
	sb.WriteString(rec.Interface)
	sb.WriteByte('\t')
	sb.WriteString(rec.IPv4Addr)
	sb.WriteByte('\t')
	sb.WriteString(rec.IPv6Addr)
	sb.WriteByte('\t')
	sb.WriteString(rec.Description)
	return sb.String()
}
