package main

import (
	"fmt"

	"github.com/sourcelang/slc/internal/cfg"
	"github.com/sourcelang/slc/internal/driver"
	"github.com/sourcelang/slc/internal/resolved"
)

func dumpResolved(res *driver.Result) {
	for _, id := range res.Order {
		mod, ok := res.Modules[id]
		if !ok {
			continue
		}
		fmt.Printf("module %s {\n", id)
		for _, d := range mod.Decls {
			dumpDecl(d, "  ")
		}
		fmt.Println("}")
	}
}

func dumpDecl(d resolved.Decl, indent string) {
	switch n := d.(type) {
	case *resolved.FunctionDecl:
		fmt.Printf("%sfn %s%s\n", indent, n.Name, n.ReturnType.String())
	case *resolved.VarDecl:
		fmt.Printf("%svar %s %s\n", indent, n.Type.String(), n.Name)
	case *resolved.StructDecl:
		fmt.Printf("%sstruct %s\n", indent, n.Name)
	case *resolved.EnumDecl:
		fmt.Printf("%senum %s\n", indent, n.Name)
	}
}

func dumpCFGs(res *driver.Result) {
	for _, id := range res.Order {
		funcs, ok := res.CFGs[id]
		if !ok {
			continue
		}
		for name, g := range funcs {
			fmt.Printf("cfg %s::%s entry=%d exit=%d blocks=%d\n", id, name, g.Entry, g.Exit, len(g.Blocks))
			dumpBlocks(g)
		}
	}
}

func dumpBlocks(g *cfg.CFG) {
	for i, b := range g.Blocks {
		fmt.Printf("  b%d:\n", i)
		for _, e := range b.Successors {
			fmt.Printf("    -> b%d (reachable=%v)\n", e.To, e.Reachable)
		}
	}
}
