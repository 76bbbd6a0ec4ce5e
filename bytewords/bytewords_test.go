package bytewords_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrissan/ur/bytewords"
)

var styles = []bytewords.Style{bytewords.Standard, bytewords.URI, bytewords.Minimal}

func TestEncodeVectors(t *testing.T) {
	input := []byte{0, 1, 2, 128, 255}
	require.Equal(t, "able acid also lava zoom jade need echo taxi", bytewords.Encode(input, bytewords.Standard))
	require.Equal(t, "able-acid-also-lava-zoom-jade-need-echo-taxi", bytewords.Encode(input, bytewords.URI))
	require.Equal(t, "aeadaolazmjendeoti", bytewords.Encode(input, bytewords.Minimal))

	require.Equal(t, "able tied also webs lung", bytewords.Encode([]byte{0}, bytewords.Standard))
	require.Equal(t, "aetdaowslg", bytewords.Encode([]byte{0}, bytewords.Minimal))
	require.Equal(t, "guru jowl join inch crux iced kick jury inch junk taxi aqua kite limp",
		bytewords.Encode([]byte("Some bytes"), bytewords.Standard))
	require.Equal(t, "gujljnihcxidinjthsjpkkcxiehsjyhsnsgdmkht",
		bytewords.Encode([]byte("Some binary data"), bytewords.Minimal))
}

func TestDecodeVectors(t *testing.T) {
	input := []byte{0, 1, 2, 128, 255}
	for _, tc := range []struct {
		encoded string
		style   bytewords.Style
	}{
		{"able acid also lava zoom jade need echo taxi", bytewords.Standard},
		{"able-acid-also-lava-zoom-jade-need-echo-taxi", bytewords.URI},
		{"aeadaolazmjendeoti", bytewords.Minimal},
	} {
		decoded, err := bytewords.Decode(tc.encoded, tc.style)
		require.NoError(t, err)
		require.Equal(t, input, decoded)
	}

	const part = "lpayaacfaddscypyuesfqzhdgeetldfzhywslusacppddspsdwgefyrdlsfzaadrdtlrdatlbbgyfyuydygrwewyjyolvtsphhmkgowdamvowfmhbnwkimrndepebtwnrpwzintihgsffznyvshftyqzoylftybykthlgerdolbwfpzoltghrd"
	decoded, err := bytewords.Decode(part, bytewords.Minimal)
	require.NoError(t, err)
	require.Len(t, decoded, 87)
	require.Equal(t, []byte{0x85, 0x08, 0x04, 0x19, 0x01, 0x26}, decoded[:6])
}

func TestEmptyPayload(t *testing.T) {
	for _, style := range styles {
		encoded := bytewords.Encode(nil, style)
		decoded, err := bytewords.Decode(encoded, style)
		require.NoError(t, err)
		require.Empty(t, decoded)
	}
	require.Equal(t, "aeaeaeae", bytewords.Encode(nil, bytewords.Minimal))
}

func TestDecodeErrors(t *testing.T) {
	badChecksum := &bytewords.InvalidChecksumError{
		Expected:   [4]byte{107, 155, 51, 243},
		Calculated: [4]byte{108, 246, 247, 201},
	}
	_, err := bytewords.Decode("able acid also lava zero jade need echo wolf", bytewords.Standard)
	require.Equal(t, badChecksum, err)
	_, err = bytewords.Decode("able-acid-also-lava-zero-jade-need-echo-wolf", bytewords.URI)
	require.Equal(t, badChecksum, err)
	_, err = bytewords.Decode("aeadaolazojendeowf", bytewords.Minimal)
	require.Equal(t, badChecksum, err)

	_, err = bytewords.Decode("wolf", bytewords.Standard)
	require.ErrorIs(t, err, bytewords.ErrChecksumNotPresent)
	_, err = bytewords.Decode("", bytewords.Standard)
	require.ErrorIs(t, err, bytewords.ErrChecksumNotPresent)
	_, err = bytewords.Decode("aea", bytewords.Minimal)
	require.ErrorIs(t, err, bytewords.ErrInvalidLength)
	for _, style := range styles {
		_, err = bytewords.Decode("₿", style)
		require.ErrorIs(t, err, bytewords.ErrNonASCII)
	}

	_, err = bytewords.Decode("able acid also lava zoom jade need echo xxxx", bytewords.Standard)
	require.Equal(t, &bytewords.InvalidWordError{Position: -1}, err)
	_, err = bytewords.Decode("able acid xxxx lava zoom jade need echo taxi", bytewords.Standard)
	require.Equal(t, &bytewords.InvalidWordError{Position: 2}, err)
	_, err = bytewords.Decode("able acid also lava zoom jade need echo taxi", bytewords.URI)
	require.Equal(t, &bytewords.InvalidWordError{Position: -1}, err, "wrong style")
	_, err = bytewords.Decode(" able tied also webs lung", bytewords.Standard)
	require.Equal(t, &bytewords.InvalidWordError{Position: 0}, err, "leading separator is an empty word")
	_, err = bytewords.Decode("ABLE TIED ALSO WEBS LUNG", bytewords.Standard)
	require.Error(t, err)
}

func TestRoundTripAllBytes(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	for _, style := range styles {
		for i := range data {
			one := data[i : i+1]
			decoded, err := bytewords.Decode(bytewords.Encode(one, style), style)
			require.NoError(t, err)
			require.Equal(t, one, decoded)
		}
		decoded, err := bytewords.Decode(bytewords.Encode(data, style), style)
		require.NoError(t, err)
		require.Equal(t, data, decoded)
	}
}

func TestCorruptionDetected(t *testing.T) {
	data := []byte("corruption test payload")
	for _, style := range styles {
		encoded := bytewords.Encode(data, style)
		for i := 0; i < len(encoded); i++ {
			if encoded[i] == ' ' || encoded[i] == '-' {
				continue
			}
			replacement := byte('a')
			if encoded[i] == 'a' {
				replacement = 'b'
			}
			corrupted := encoded[:i] + string(replacement) + encoded[i+1:]
			_, err := bytewords.Decode(corrupted, style)
			var wordErr *bytewords.InvalidWordError
			var checksumErr *bytewords.InvalidChecksumError
			require.True(t, errors.As(err, &wordErr) || errors.As(err, &checksumErr),
				"style %v position %d: %v", style, i, err)
		}
	}
}

func TestHundredBytes(t *testing.T) {
	input := []byte{
		245, 215, 20, 198, 241, 235, 69, 59, 209, 205, 165, 18, 150, 158, 116, 135, 229, 212,
		19, 159, 17, 37, 239, 240, 253, 11, 109, 191, 37, 242, 38, 120, 223, 41, 156, 189, 242,
		254, 147, 204, 66, 163, 216, 175, 191, 72, 169, 54, 32, 60, 144, 230, 210, 137, 184,
		197, 33, 113, 88, 14, 157, 31, 177, 46, 1, 115, 205, 69, 225, 150, 65, 235, 58, 144,
		65, 240, 133, 69, 113, 247, 63, 53, 242, 165, 160, 144, 26, 13, 79, 237, 133, 71, 82,
		69, 254, 165, 138, 41, 85, 24,
	}
	encoded := strings.Join([]string{
		"yank toys bulb skew when warm free fair tent swan",
		"open brag mint noon jury list view tiny brew note",
		"body data webs what zinc bald join runs data whiz",
		"days keys user diet news ruby whiz zone menu surf",
		"flew omit trip pose runs fund part even crux fern",
		"math visa tied loud redo silk curl jugs hard beta",
		"next cost puma drum acid junk swan free very mint",
		"flap warm fact math flap what limp free jugs yell",
		"fish epic whiz open numb math city belt glow wave",
		"limp fuel grim free zone open love diet gyro cats",
		"fizz holy city puff",
	}, " ")
	encodedMinimal := "yktsbbswwnwmfefrttsnonbgmtnnjyltvwtybwne" +
		"bydawswtzcbdjnrsdawzdsksurdtnsrywzzemusf" +
		"fwottppersfdptencxfnmhvatdldroskcljshdba" +
		"ntctpadmadjksnfevymtfpwmftmhfpwtlpfejsyl" +
		"fhecwzonnbmhcybtgwwelpflgmfezeonledtgocs" +
		"fzhycypf"

	require.Equal(t, encoded, bytewords.Encode(input, bytewords.Standard))
	require.Equal(t, encodedMinimal, bytewords.Encode(input, bytewords.Minimal))
	decoded, err := bytewords.Decode(encoded, bytewords.Standard)
	require.NoError(t, err)
	require.Equal(t, input, decoded)
	decoded, err = bytewords.Decode(encodedMinimal, bytewords.Minimal)
	require.NoError(t, err)
	require.Equal(t, input, decoded)
}

func TestValidateAndDecodeTo(t *testing.T) {
	data := make([]byte, 200) // longer than the internal checksum chunk
	for i := range data {
		data[i] = byte(i * 7)
	}
	for _, style := range styles {
		encoded := bytewords.Encode(data, style)
		n, err := bytewords.Validate(encoded, style)
		require.NoError(t, err)
		require.Equal(t, len(data), n)

		dst := make([]byte, len(data)+10)
		n, err = bytewords.DecodeTo(dst, encoded, style)
		require.NoError(t, err)
		require.Equal(t, data, dst[:n])

		short := make([]byte, 10)
		_, err = bytewords.DecodeTo(short, encoded, style)
		require.Equal(t, &bytewords.NotEnoughSpaceError{Available: 10, Needed: len(data)}, err)
	}
	_, err := bytewords.Validate("aeadaolazojendeowf", bytewords.Minimal)
	var checksumErr *bytewords.InvalidChecksumError
	require.ErrorAs(t, err, &checksumErr)
}

func TestEncodeTo(t *testing.T) {
	data := []byte{0, 1, 2, 128, 255}
	for _, style := range styles {
		want := bytewords.Encode(data, style)
		require.Equal(t, len(want), bytewords.EncodedLen(len(data), style))

		dst := make([]byte, len(want))
		n, err := bytewords.EncodeTo(dst, data, style)
		require.NoError(t, err)
		require.Equal(t, want, string(dst[:n]))

		_, err = bytewords.EncodeTo(dst[:len(want)-1], data, style)
		require.ErrorIs(t, err, bytewords.ErrEncodeNotEnoughSpace)
	}
}

func TestParseStyle(t *testing.T) {
	for _, style := range styles {
		parsed, err := bytewords.ParseStyle(style.String())
		require.NoError(t, err)
		require.Equal(t, style, parsed)
	}
	_, err := bytewords.ParseStyle("fancy")
	require.Error(t, err)
}

func FuzzDecode(f *testing.F) {
	f.Add("aeadaolazmjendeoti", 2)
	f.Add("able acid also lava zoom jade need echo taxi", 0)
	f.Fuzz(func(t *testing.T, encoded string, s int) {
		style := styles[uint(s)%uint(len(styles))]
		decoded, err := bytewords.Decode(encoded, style)
		n, verr := bytewords.Validate(encoded, style)
		if (err == nil) != (verr == nil) {
			t.Fatalf("decode %v and validate %v disagree", err, verr)
		}
		if err != nil {
			return
		}
		if n != len(decoded) {
			t.Fatalf("validate length %d, decoded %d", n, len(decoded))
		}
		if bytewords.Encode(decoded, style) != encoded {
			t.Fatalf("encoding is not canonical")
		}
	})
}

func BenchmarkDecodeMinimal(b *testing.B) {
	data := make([]byte, 300)
	encoded := bytewords.Encode(data, bytewords.Minimal)
	dst := make([]byte, len(data))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := bytewords.DecodeTo(dst, encoded, bytewords.Minimal); err != nil {
			b.Fatal(err)
		}
	}
}
