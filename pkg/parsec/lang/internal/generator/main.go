// Command generator regenerates ../../sepby_gen.go from
// ../../templates/sepby.go.tmpl. It is invoked via `go generate` in
// pkg/parsec/lang, never run directly as part of a build.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/consensys/bavard"
)

const copyrightHolder = "the go-parsec authors"

type variant struct {
	Name string
	Doc  string
	Body string
}

//go:generate go run .
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "go-parsec")

	cfg := struct {
		Variants []variant
	}{
		Variants: []variant{
			{
				Name: "SepBy1",
				Doc:  "matches one or more occurrences of item separated by sep, requiring at least one item and no trailing separator.",
				Body: "\treturn parsec.Eager(parsec.Cons(item, parsec.Many(parsec.Attempt(parsec.Next(sep, item)))))",
			},
			{
				Name: "SepBy",
				Doc:  "matches zero or more occurrences of item separated by sep. Equivalent to SepBy1 except that no items at all is also accepted.",
				Body: "\treturn parsec.Optional(SepBy1(sep, item), nil)",
			},
			{
				Name: "EndBy1",
				Doc:  "matches one or more occurrences of item, each one terminated by sep (so the last sep is mandatory, unlike SepBy1).",
				Body: "\telem := parsec.Bind(item, func(v V) parsec.Parser[T, V] { return parsec.Next(sep, parsec.Always[T, V](v)) })\n\treturn parsec.Eager(parsec.Many1(elem))",
			},
			{
				Name: "EndBy",
				Doc:  "matches zero or more occurrences of item, each one terminated by sep.",
				Body: "\telem := parsec.Bind(item, func(v V) parsec.Parser[T, V] { return parsec.Next(sep, parsec.Always[T, V](v)) })\n\treturn parsec.Eager(parsec.Many(elem))",
			},
			{
				Name: "SepEndBy1",
				Doc:  "matches one or more occurrences of item separated by sep, with an optional trailing sep.",
				Body: "\treturn parsec.Bind(SepBy1(sep, item), func(vs []V) parsec.Parser[T, []V] {\n\t\tvar zero S\n\t\treturn parsec.Next(parsec.Optional(sep, zero), parsec.Always[T, []V](vs))\n\t})",
			},
			{
				Name: "SepEndBy",
				Doc:  "matches zero or more occurrences of item separated by sep, with an optional trailing sep.",
				Body: "\treturn parsec.Optional(SepEndBy1(sep, item), nil)",
			},
		},
	}

	assertNoError(bgen.Generate(cfg, "lang", "../../templates",
		bavard.Entry{
			File:      "../../sepby_gen.go",
			Templates: []string{"sepby.go.tmpl"},
		},
	), "generating sepby_gen.go")

	runCmd("gofmt", "-w", "../../sepby_gen.go")
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, arg)

	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "running "+name)
}

func assertNoError(err error, context string) {
	if err != nil {
		fmt.Println(context+":", err)
		os.Exit(1)
	}
}
