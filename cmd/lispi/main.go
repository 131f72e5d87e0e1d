package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	lispi "github.com/vegayours/rlispi"
)

const (
	appName     = "lispi"
	historyFile = ".lispi_history"
	promptMain  = "(lispi)=> "
	promptCont  = "......... "
)

func main() {
	if len(os.Args) > 1 {
		os.Exit(runFiles(os.Args[1:]))
	}
	os.Exit(repl())
}

// runFiles evaluates each file against one shared environment, aborting on
// the first error.
func runFiles(paths []string) int {
	env := lispi.NewEnv()
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
			return 1
		}
		parser := lispi.NewParser()
		forms, err := parser.ParseNext(string(src))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", appName, path, err)
			return 1
		}
		for _, form := range forms {
			if _, err := lispi.Eval(env, form); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %s: %v\n", appName, path, err)
				return 1
			}
		}
		if err := parser.Finish(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", appName, path, err)
			return 1
		}
	}
	return 0
}

// repl reads forms interactively, printing each result. Errors print and the
// loop continues with fresh reader state.
func repl() int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	env := lispi.NewEnv()
	parser := lispi.NewParser()

	for {
		prompt := promptMain
		if parser.Depth() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			parser = lispi.NewParser()
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		forms, perr := parser.ParseNext(line)
		if perr != nil {
			fmt.Fprintln(os.Stderr, perr)
			parser = lispi.NewParser()
			continue
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		for _, form := range forms {
			val, err := lispi.Eval(env, form)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Println(val.String())
		}
	}
}
