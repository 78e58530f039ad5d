// localrender makes it simple to test a template locally: it expands
// template.tex with the variables from variables.json in the current
// directory, runs xelatex on the result and prints the typesetter output.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/paperpress/paperpress/internal/render"
)

func main() {
	var variables any
	if data, err := os.ReadFile("variables.json"); err == nil {
		if err := json.Unmarshal(data, &variables); err != nil {
			log.Fatalf("variables.json is not valid JSON: %v", err)
		}
	}

	tpl, err := os.ReadFile("template.tex")
	if err != nil {
		log.Fatalf("could not read template.tex: %v", err)
	}

	expanded, err := render.Expand(string(tpl), variables, true)
	if err != nil {
		log.Fatalf("failed to expand the template: %v", err)
	}
	if err := os.WriteFile("rendered.tex", []byte(expanded), 0o644); err != nil {
		log.Fatalf("could not write rendered.tex: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	ts := &render.Typesetter{Binary: os.Getenv("XELATEX_PATH")}
	stdout, err := ts.Run(context.Background(), &render.Workspace{Path: wd}, "rendered.tex")
	fmt.Print(stdout)
	if err != nil {
		os.Exit(1)
	}
}
