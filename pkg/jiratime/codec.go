package jiratime

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultLayout renders the date and time portion with four fractional digits.
const DefaultLayout = "2006-01-02T15:04:05.0000"

// fallbackLayout accepts any number of fractional digits when parsing.
const fallbackLayout = "2006-01-02T15:04:05Z07:00"

// maxOffsetHours bounds offsets in both directions, as JIRA's servers do.
const maxOffsetHours = 14

var (
	// compactOffset matches a trailing "HHMM" offset. A fraction ending in four
	// digits with no offset matches too and then fails to parse.
	compactOffset = regexp.MustCompile(`\d{4}$`)
	// spacedSign matches the " - 0200" form produced by SpacedNegativeSign.
	spacedSign = regexp.MustCompile(`\s+([+-])\s*(\d{2}:?\d{2})$`)
	// colonOffset captures the hours and minutes of a "+HH:MM" offset.
	colonOffset = regexp.MustCompile(`[+-](\d{2}):(\d{2})$`)

	// zoneTokens are the layout elements that render a zone or offset.
	zoneTokens = []string{"Z07", "-07", "MST"}

	timestampType = reflect.TypeOf(Timestamp{})
)

// Config controls how a Codec renders timestamps.
type Config struct {
	// Layout is the Go reference layout for the date and time, without offset.
	Layout string
	// SpacedNegativeSign renders negative offsets as " - 0200" rather than "-0200".
	// Existing consumers of the wire format expect the spaced form.
	SpacedNegativeSign bool
}

// Validate reports a layout that renders its own zone or offset, which would
// put a second offset into the wire string.
func (c Config) Validate() error {
	for _, token := range zoneTokens {
		if strings.Contains(c.Layout, token) {
			return fmt.Errorf("%w: layout %q contains %q", ErrLayoutZone, c.Layout, token)
		}
	}
	return nil
}

// DefaultConfig returns the configuration matching JIRA's wire format.
func DefaultConfig() Config {
	return Config{
		Layout:             DefaultLayout,
		SpacedNegativeSign: true,
	}
}

// Codec converts Timestamps to and from the wire format. A Codec holds only
// its configuration and may be used by multiple goroutines at once.
type Codec struct {
	cfg       Config
	layoutErr error
}

var defaultCodec = New(DefaultConfig())

// New returns a Codec for cfg. An empty layout selects DefaultLayout.
// A codec built from a config that fails Validate refuses to encode.
func New(cfg Config) *Codec {
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}
	return &Codec{cfg: cfg, layoutErr: cfg.Validate()}
}

// Default returns the shared Codec built from DefaultConfig.
func Default() *Codec {
	return defaultCodec
}

// Config returns the codec configuration.
func (c *Codec) Config() Config {
	return c.cfg
}

// Encode renders ts as date, sign and "HHMM" offset.
func (c *Codec) Encode(ts Timestamp) (string, error) {
	if c.layoutErr != nil {
		return "", &FormatError{Input: ts.Time.String(), Err: c.layoutErr}
	}

	_, off := ts.Zone()
	sign := "+"
	if off < 0 {
		sign = "-"
		if c.cfg.SpacedNegativeSign {
			sign = " - "
		}
		off = -off
	}

	hours, mins := off/3600, off%3600/60
	if off%60 != 0 || mins >= 60 || hours > maxOffsetHours || (hours == maxOffsetHours && mins > 0) {
		return "", &FormatError{
			Input: ts.Time.String(),
			Err:   fmt.Errorf("%w: %ds", ErrOffsetRange, off),
		}
	}

	return fmt.Sprintf("%s%s%02d%02d", ts.Format(c.cfg.Layout), sign, hours, mins), nil
}

// Decode parses s, accepting both "+0200" and "+02:00" offsets. The offset is
// kept as given; the result is not converted to UTC or local time.
func (c *Codec) Decode(s string) (Timestamp, error) {
	value := spacedSign.ReplaceAllString(s, "$1$2")
	if compactOffset.MatchString(value) {
		value = value[:len(value)-2] + ":" + value[len(value)-2:]
	}
	if err := checkOffset(value); err != nil {
		return Timestamp{}, &FormatError{Input: s, Token: TokenString, Err: err}
	}

	t, err := time.Parse(c.cfg.Layout+"Z07:00", value)
	if err != nil {
		var fallbackErr error
		t, fallbackErr = time.Parse(fallbackLayout, value)
		if fallbackErr != nil {
			return Timestamp{}, &FormatError{Input: s, Token: TokenString, Err: err}
		}
	}
	return Timestamp{Time: t}, nil
}

// checkOffset rejects offsets that time.Parse would accept and normalize,
// such as "+02:60" or "+24:00".
func checkOffset(value string) error {
	m := colonOffset.FindStringSubmatch(value)
	if m == nil {
		return nil
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if mins > 59 || hours > maxOffsetHours || (hours == maxOffsetHours && mins > 0) {
		return fmt.Errorf("%w: %s", ErrOffsetRange, m[0])
	}
	return nil
}

// CanHandle reports whether typ is the type this codec converts.
func (c *Codec) CanHandle(typ reflect.Type) bool {
	return typ == timestampType
}

// Read decodes a value handed over by a serializer. Only string tokens are accepted.
func (c *Codec) Read(kind TokenKind, value any) (Timestamp, error) {
	s, ok := value.(string)
	if kind != TokenString || !ok {
		return Timestamp{}, &FormatError{
			Input: fmt.Sprint(value),
			Token: kind,
			Err:   ErrUnexpectedToken,
		}
	}
	return c.Decode(s)
}

// Write encodes ts into w as a single string and flushes it.
func (c *Codec) Write(ts Timestamp, w Writer) error {
	s, err := c.Encode(ts)
	if err != nil {
		return err
	}
	if err := w.WriteString(s); err != nil {
		return fmt.Errorf("failed to write timestamp: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush timestamp: %w", err)
	}
	return nil
}
