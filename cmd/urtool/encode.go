package main

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/hrissan/ur/envelope"
	"github.com/hrissan/ur/ur"
)

func runEncode(env *environment, args []string) error {
	var common commonFlags
	var flags encodeFlags
	flagSet := newFlagSet("urtool encode", env)
	common.register(flagSet)
	flagSet.StringVar(&flags.urType, "type", "", "UR type (default from config or bytes); bytes wraps the payload in a CBOR byte string, other types expect CBOR input")
	flagSet.IntVar(&flags.maxFragment, "max-fragment", 0, "maximum fragment length in bytes (default from config or 200)")
	flagSet.IntVar(&flags.parts, "parts", 0, "number of parts to print (default sequence count times redundancy)")
	flagSet.Float64Var(&flags.redundancy, "redundancy", 0, "parts to print per fragment when --parts is not given (default from config or 2)")
	flagSet.BoolVar(&flags.single, "single", false, "print one single-part UR")
	flagSet.BoolVar(&flags.upper, "upper", false, "print uppercase URs for QR alphanumeric mode")
	flagSet.BoolVar(&flags.envelope, "envelope", false, "wrap the payload in an envelope even without compression or passphrase")
	flagSet.StringVar(&flags.compress, "compress", "", "envelope compression: none, zstd, lz4 (default from config or none)")
	flagSet.StringVar(&flags.passphrase, "passphrase", "", "seal the envelope with a passphrase")

	err := env.parse(flagSet, &common, args)
	if err == nil {
		err = env.encode(flagSet.Changed, &common, flags)
	}
	return env.finish(err)
}

type encodeFlags struct {
	urType      string
	maxFragment int
	parts       int
	redundancy  float64
	single      bool
	upper       bool
	envelope    bool
	compress    string
	passphrase  string
}

func (env *environment) encode(changed func(string) bool, common *commonFlags, flags encodeFlags) error {
	cfg := env.cfg
	if changed("type") {
		cfg.Type = flags.urType
	}
	if changed("max-fragment") {
		cfg.MaxFragment = flags.maxFragment
	}
	if changed("redundancy") {
		cfg.Redundancy = flags.redundancy
	}
	if changed("compress") {
		cfg.Compress = flags.compress
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	if !ur.IsValidType(cfg.Type) || cfg.Type == "" {
		return fmt.Errorf("invalid UR type %q", cfg.Type)
	}
	if flags.parts < 0 {
		return fmt.Errorf("parts (%d) should not be negative", flags.parts)
	}
	compression, err := envelope.ParseCompression(cfg.Compress)
	if err != nil {
		return err
	}

	payload, err := env.readInput(common.in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if flags.envelope || compression != envelope.CompressionNone || flags.passphrase != "" {
		wrapped, err := envelope.Wrap(payload, &envelope.Options{
			Compression: compression,
			Passphrase:  []byte(flags.passphrase),
		})
		if err != nil {
			return fmt.Errorf("wrap envelope: %w", err)
		}
		env.logger.Debug("payload wrapped",
			zap.Int("payload", len(payload)),
			zap.Int("envelope", len(wrapped)),
			zap.Stringer("compression", compression),
			zap.Bool("sealed", flags.passphrase != ""))
		payload = wrapped
	}
	message := payload
	if cfg.Type == "bytes" {
		message = ur.EncodeBytes(payload)
	}
	if len(message) == 0 {
		return fmt.Errorf("nothing to encode")
	}

	var out strings.Builder
	writeLine := func(s string) {
		if flags.upper {
			s = strings.ToUpper(s)
		}
		out.WriteString(s)
		out.WriteByte('\n')
	}
	if flags.single {
		writeLine(ur.ToString(cfg.Type, message))
		return env.writeOutput(common.out, []byte(out.String()))
	}

	var encoder ur.Encoder
	encoder.Start(cfg.Type, message, cfg.MaxFragment)
	count := flags.parts
	if count == 0 {
		count = int(math.Ceil(float64(encoder.SequenceCount()) * cfg.Redundancy))
	}
	env.logger.Info("encoding",
		zap.String("type", cfg.Type),
		zap.Int("message", len(message)),
		zap.Uint32("sequence_count", encoder.SequenceCount()),
		zap.Int("parts", count))
	for i := 0; i < count; i++ {
		writeLine(encoder.NextPart().String())
	}
	return env.writeOutput(common.out, []byte(out.String()))
}
