// Command h5ls lists the contents of a saved native container file:
// entries with their shapes and element types, sub-containers, and
// attribute names.
package main

import (
	"fmt"
	"os"

	"github.com/mmorale3/h5/h5"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: h5ls <file>")
		os.Exit(1)
	}

	f, err := h5.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "h5ls: %v\n", err)
		os.Exit(1)
	}

	walk(f.Root(), 0)
}

func walk(g h5.Group, depth int) {
	if depth > 20 {
		fmt.Println("... (max depth reached)")
		return
	}

	fmt.Printf("%s:\n", g.Path())

	for _, name := range g.Attributes() {
		fmt.Printf("  @%s\n", name)
	}

	for _, name := range g.Entries() {
		info, err := h5.Inspect(g, name)
		if err != nil {
			fmt.Printf("  %s  ERROR: %v\n", name, err)
			continue
		}
		flag := ""
		if info.HasComplexTag {
			flag = "  complex"
		}
		if info.Rank() == 0 {
			fmt.Printf("  %s  scalar %s%s\n", name, info.Type.Name(), flag)
		} else {
			fmt.Printf("  %s  %v %s%s\n", name, info.Lengths, info.Type.Name(), flag)
		}
		if ent, err := g.Entry(name); err == nil {
			for _, attr := range ent.Attributes() {
				fmt.Printf("    @%s\n", attr)
			}
		}
	}

	for _, name := range g.Groups() {
		sub, err := g.OpenGroup(name)
		if err != nil {
			fmt.Printf("  %s/  ERROR: %v\n", name, err)
			continue
		}
		walk(sub, depth+1)
	}
}
