package zoo

import (
	"fmt"
	"strings"
)

// Render produces the human-readable zoo summary
func (z *Zoo) Render() string {
	name := z.Name()
	title := name + " Zoo"

	var b strings.Builder
	b.WriteString("\n" + title + "\n")
	b.WriteString(strings.Repeat("=", len(title)+1) + "\n")
	fmt.Fprintf(&b, "Name       : %s\n", name)
	fmt.Fprintf(&b, "Location   : %s\n\n", z.Location())

	ids := z.EnclosureIDs()
	fmt.Fprintf(&b, "Enclosures : %d\n", len(ids))
	if len(ids) > 0 {
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, id.String())
		}
		fmt.Fprintf(&b, "  -> IDs   : %s\n\n", strings.Join(parts, ", "))
	} else {
		b.WriteString("  -> No enclosures added.\n")
	}

	roster := z.Roster()
	fmt.Fprintf(&b, "Employees  : %d\n", len(roster))
	if len(roster) > 0 {
		for _, entry := range roster {
			fmt.Fprintf(&b, "  - %s (%s)\n", entry.Name, entry.Role)
		}
	} else {
		b.WriteString("  -> No employees added.\n\n")
	}

	return b.String()
}

// String implements fmt.Stringer
func (z *Zoo) String() string {
	return z.Render()
}
