// cmd/tablegen reads a builder config JSON file and writes the generated
// artifacts — a data-grid component, a row type declaration and a SQL
// migration against the normalized schema — into an output directory.
//
// Usage:
//
//	tablegen -config table.json -out gen/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/buildy/tablemaker/internal/builder"
	"github.com/buildy/tablemaker/internal/codegen"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tablegen: ")

	configPath := flag.String("config", "", "builder config JSON file")
	outDir := flag.String("out", "gen", "output directory")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("-config is required")
	}

	data, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}
	var cfg builder.BuilderConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("parsing config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output dir: %v", err)
	}

	ui, err := codegen.GenerateUI(cfg)
	if err != nil {
		log.Fatalf("generating component: %v", err)
	}
	types, err := codegen.GenerateTypes(cfg)
	if err != nil {
		log.Fatalf("generating types: %v", err)
	}
	sqlText, err := codegen.GenerateSQL(cfg)
	if err != nil {
		log.Fatalf("generating sql: %v", err)
	}

	artifacts := []struct {
		name, content string
	}{
		{cfg.TableName + ".tsx", ui},
		{cfg.TableName + ".types.ts", types},
		{cfg.TableName + ".sql", sqlText},
	}
	for _, a := range artifacts {
		path := filepath.Join(*outDir, a.name)
		if err := os.WriteFile(path, []byte(a.content+"\n"), 0o644); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
		fmt.Printf("Generated %s\n", path)
	}
}
