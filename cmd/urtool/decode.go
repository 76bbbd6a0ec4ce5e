package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hrissan/ur/envelope"
	"github.com/hrissan/ur/ur"
	"github.com/hrissan/ur/urerrors"
)

// maxLineLength bounds one input line, a single-part UR carries the whole message.
const maxLineLength = 16 << 20

type decodeFlags struct {
	envelope         bool
	passphrase       string
	hex              bool
	maxFragment      int
	maxSequenceCount int
}

func runDecode(env *environment, args []string) error {
	var common commonFlags
	var flags decodeFlags
	flagSet := newFlagSet("urtool decode", env)
	common.register(flagSet)
	flagSet.BoolVar(&flags.envelope, "envelope", false, "unwrap an envelope after reassembly")
	flagSet.StringVar(&flags.passphrase, "passphrase", "", "passphrase of a sealed envelope, implies --envelope")
	flagSet.BoolVar(&flags.hex, "hex", false, "write the payload as hex")
	flagSet.IntVar(&flags.maxFragment, "max-fragment", 0, "largest accepted fragment length when the decoder is bounded (default from config or 200)")
	flagSet.IntVar(&flags.maxSequenceCount, "max-sequence-count", 0, "bound the decoder to this many fragments, 0 means unbounded (default from config)")

	err := env.parse(flagSet, &common, args)
	if err == nil {
		err = env.decode(flagSet.Changed, &common, flags)
	}
	return env.finish(err)
}

func (env *environment) decode(changed func(string) bool, common *commonFlags, flags decodeFlags) error {
	cfg := env.cfg
	if changed("max-fragment") {
		cfg.MaxFragment = flags.maxFragment
	}
	if changed("max-sequence-count") {
		cfg.MaxSequenceCount = flags.maxSequenceCount
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	opts := ur.DefaultDecoderOptions(env.stats)
	if cfg.MaxSequenceCount != 0 {
		opts = ur.FixedDecoderOptions(cfg.MaxFragment, cfg.MaxSequenceCount, env.stats)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	input, err := env.openInput(common.in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer input.Close()

	urType, message, err := env.receiveLines(bufio.NewScanner(input), ur.NewDecoder(opts))
	if err != nil {
		return err
	}

	payload := message
	if urType == "bytes" {
		if payload, err = ur.DecodeBytes(message); err != nil {
			return err
		}
	}
	if flags.envelope || flags.passphrase != "" {
		if payload, err = envelope.Unwrap(payload, []byte(flags.passphrase)); err != nil {
			return fmt.Errorf("unwrap envelope: %w", err)
		}
	}
	if flags.hex {
		payload = []byte(hex.EncodeToString(payload) + "\n")
	}
	return env.writeOutput(common.out, payload)
}

// receiveLines feeds URs from scanner until a message is complete. A single-part
// UR completes immediately. Warnings are logged and scanning continues, fatal
// decoder errors abort.
func (env *environment) receiveLines(scanner *bufio.Scanner, decoder *ur.Decoder) (string, []byte, error) {
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineLength)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		u, err := ur.Parse(line)
		if err != nil {
			env.logger.Warn("skipping line", zap.Int("line", lineNumber), zap.Error(err))
			continue
		}
		if u.IsSinglePart() {
			message, err := u.Payload()
			if err != nil {
				env.logger.Warn("skipping single-part UR", zap.Int("line", lineNumber), zap.Error(err))
				continue
			}
			return u.Type(), message, nil
		}
		if err := decoder.Receive(u); err != nil {
			if urerrors.IsFatal(err) {
				return "", nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			continue // reported through stats
		}
		env.logger.Debug("progress",
			zap.Int("line", lineNumber),
			zap.Float64("estimated", decoder.EstimatedPercentComplete()))
		if decoder.IsComplete() {
			message, err := decoder.Message()
			if err != nil {
				return "", nil, err
			}
			urType, _ := decoder.URType()
			return urType, message, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("read input: %w", err)
	}
	if decoder.IsEmpty() {
		return "", nil, fmt.Errorf("no URs in input")
	}
	return "", nil, fmt.Errorf("input ended before the message was complete (estimated %.0f%%)",
		100*decoder.EstimatedPercentComplete())
}
