package sheet

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// Kind names one of the five ranges the display reads.
type Kind string

const (
	KindSchedule   Kind = "schedule"
	KindNotices    Kind = "notices"
	KindImages     Kind = "images"
	KindStatistics Kind = "statistics"
	KindHalls      Kind = "halls"
)

// Kinds lists every range kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindImages, KindStatistics, KindSchedule, KindHalls, KindNotices}
}

//go:embed contract.toml
var contractTOML string

// RangeContract is the positional column layout of one range.
type RangeContract struct {
	Range   string   `toml:"range"`
	Columns []string `toml:"columns"`
}

// Contract is the versioned column layout of every range.
type Contract struct {
	Version int                    `toml:"version"`
	Ranges  map[Kind]RangeContract `toml:"range"`
}

// ParseContract decodes a contract document and checks every kind is present.
func ParseContract(doc string) (Contract, error) {
	var c Contract
	if _, err := toml.Decode(doc, &c); err != nil {
		return Contract{}, fmt.Errorf("decode range contract: %w", err)
	}
	if c.Version < 1 {
		return Contract{}, fmt.Errorf("range contract: unsupported version %d", c.Version)
	}
	var missing []string
	for _, k := range Kinds() {
		rc, ok := c.Ranges[k]
		if !ok || strings.TrimSpace(rc.Range) == "" || len(rc.Columns) == 0 {
			missing = append(missing, string(k))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Contract{}, fmt.Errorf("range contract: incomplete ranges %s", strings.Join(missing, ", "))
	}
	for _, k := range Kinds() {
		if err := c.CheckRange(k, c.Ranges[k].Range); err != nil {
			return Contract{}, fmt.Errorf("range contract: %w", err)
		}
	}
	return c, nil
}

var defaultContract = sync.OnceValue(func() Contract {
	c, err := ParseContract(contractTOML)
	if err != nil {
		panic(err)
	}
	return c
})

// DefaultContract returns the embedded contract (version 1).
func DefaultContract() Contract {
	return defaultContract()
}

// HeaderMismatches compares a fetched header row against the contract columns,
// case-insensitively. An empty header yields no mismatches.
func (c Contract) HeaderMismatches(kind Kind, header []string) []string {
	rc, ok := c.Ranges[kind]
	if !ok || len(header) == 0 {
		return nil
	}
	var out []string
	for i, want := range rc.Columns {
		got := ""
		if i < len(header) {
			got = strings.TrimSpace(header[i])
		}
		if !strings.EqualFold(got, want) {
			out = append(out, fmt.Sprintf("column %d: want %q, got %q", i, want, got))
		}
	}
	return out
}

// CheckRange reports whether rng names a sheet and spans at least the
// contract's columns for kind. Wider ranges are fine: parsing is positional and
// extra columns are ignored.
func (c Contract) CheckRange(kind Kind, rng string) error {
	rc, ok := c.Ranges[kind]
	if !ok {
		return fmt.Errorf("%s: not in range contract", kind)
	}
	_, cols, err := ParseRange(rng)
	if err != nil {
		return err
	}
	if cols < len(rc.Columns) {
		return fmt.Errorf("%s: range %q spans %d columns, contract v%d needs %d (%s)",
			kind, rng, cols, c.Version, len(rc.Columns), strings.Join(rc.Columns, ", "))
	}
	return nil
}

// ParseRange splits an A1 range such as "Schedule!A:F" or "'Room list'!B2:E40"
// into its sheet name and the number of columns it covers.
func ParseRange(rng string) (sheetName string, cols int, err error) {
	idx := strings.LastIndex(rng, "!")
	if idx < 0 {
		return "", 0, fmt.Errorf("range %q has no sheet name", rng)
	}
	sheetName = strings.TrimSpace(rng[:idx])
	if len(sheetName) >= 2 && strings.HasPrefix(sheetName, "'") && strings.HasSuffix(sheetName, "'") {
		sheetName = strings.ReplaceAll(sheetName[1:len(sheetName)-1], "''", "'")
	}
	if sheetName == "" {
		return "", 0, fmt.Errorf("range %q has no sheet name", rng)
	}

	refs := strings.Split(strings.TrimSpace(rng[idx+1:]), ":")
	if len(refs) > 2 {
		return "", 0, fmt.Errorf("range %q: malformed cell reference", rng)
	}
	first, ok := columnIndex(refs[0])
	if !ok {
		return "", 0, fmt.Errorf("range %q: no start column", rng)
	}
	last := first
	if len(refs) == 2 {
		if last, ok = columnIndex(refs[1]); !ok {
			return "", 0, fmt.Errorf("range %q: no end column", rng)
		}
	}
	if last < first {
		return "", 0, fmt.Errorf("range %q: end column before start column", rng)
	}
	return sheetName, last - first + 1, nil
}

// columnIndex reads the column letters of a cell reference ("AB12" -> 28).
func columnIndex(ref string) (int, bool) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	n, i := 0, 0
	for ; i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z'; i++ {
		n = n*26 + int(ref[i]-'A'+1)
	}
	if i == 0 {
		return 0, false
	}
	for ; i < len(ref); i++ {
		if ref[i] < '0' || ref[i] > '9' {
			return 0, false
		}
	}
	return n, true
}
