package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hrissan/ur/bytewords"
)

func runBytewords(env *environment, args []string) error {
	if len(args) == 0 || (args[0] != "encode" && args[0] != "decode") {
		return fmt.Errorf("usage: urtool bytewords encode|decode [flags]")
	}
	direction := args[0]

	var common commonFlags
	var style string
	var useHex bool
	flagSet := newFlagSet("urtool bytewords "+direction, env)
	common.register(flagSet)
	flagSet.StringVar(&style, "style", "", "standard, uri or minimal (default from config or minimal)")
	flagSet.BoolVar(&useHex, "hex", false, "binary side is hex text")

	err := env.parse(flagSet, &common, args[1:])
	if err == nil {
		if flagSet.Changed("style") {
			env.cfg.Style = style
		}
		err = env.convertBytewords(direction == "encode", &common, useHex)
	}
	return env.finish(err)
}

func (env *environment) convertBytewords(encode bool, common *commonFlags, useHex bool) error {
	style, err := bytewords.ParseStyle(env.cfg.Style)
	if err != nil {
		return err
	}
	input, err := env.readInput(common.in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if encode {
		data := input
		if useHex {
			if data, err = hex.DecodeString(strings.TrimSpace(string(input))); err != nil {
				return fmt.Errorf("decode hex input: %w", err)
			}
		}
		return env.writeOutput(common.out, []byte(bytewords.Encode(data, style)+"\n"))
	}

	data, err := bytewords.Decode(strings.TrimSpace(string(input)), style)
	if err != nil {
		return err
	}
	if useHex {
		data = []byte(hex.EncodeToString(data) + "\n")
	}
	return env.writeOutput(common.out, data)
}
