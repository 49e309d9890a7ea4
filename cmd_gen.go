package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwtools/git-cw/internal/rule"
)

type genCmd struct {
	Emoji bool `cli:"emoji,e" help:"seed emoji codes for the default types"`
}

func (c genCmd) Run(g globalCmd, args []string) error {
	filename := rule.DefaultFileName + ".yaml"
	if len(args) > 0 {
		filename = args[0]
	}

	filename, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "output: %v\n", filename)

	r := rule.Default(c.Emoji)

	var content []byte
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		content, err = json.MarshalIndent(r, "", "  ")
	} else {
		content, err = yaml.Marshal(r)
	}
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(content)
	return err
}
