package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/libshub/libs-client/pkg/libs"
	"github.com/libshub/libs-client/pkg/libsclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired = errors.New("no API endpoint configured, use --api or 'libsctl config set api'")
	ErrTokenRequired       = errors.New("no token configured, use --token or 'libsctl config set-token'")
	ErrPayloadRequired     = errors.New("request payload required, use --data or --file")
	ErrPayloadNotObject    = errors.New("request payload must be a JSON object")
)

// CreateClient builds a libs client from the effective CLI configuration.
func CreateClient() (libs.Client, error) {
	endpoint := viper.GetString("api")
	if endpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, ErrTokenRequired
	}

	config := &libs.Config{
		BaseURL:  endpoint,
		Token:    token,
		CallerID: viper.GetString("caller_id"),
	}

	if viper.GetBool("verbose") {
		config.Logger = &stderrLogger{}
		config.Debug = true
	}

	client, err := libsclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// stderrLogger writes structured log lines to stderr for --verbose runs.
type stderrLogger struct{}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for _, key := range keys {
		fmt.Fprintf(os.Stderr, " %s=%v", key, fields[key])
	}

	fmt.Fprintln(os.Stderr)
}

// readPayload loads the request body from --data, --file or stdin ("-").
func readPayload(data, file string) (*libs.ResourcePayload, error) {
	var raw []byte

	switch {
	case data != "":
		raw = []byte(data)
	case file == "-":
		stdin, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading payload from stdin: %w", err)
		}

		raw = stdin
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading payload file: %w", err)
		}

		raw = content
	default:
		return nil, ErrPayloadRequired
	}

	payload := &libs.ResourcePayload{}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayloadNotObject, err)
	}

	return payload, nil
}

// renderOutput writes a raw JSON result in the configured output format.
func renderOutput(result json.RawMessage) error {
	output := viper.GetString("output")

	switch output {
	case OutputFormatJSON:
		return renderJSON(result)
	case OutputFormatYAML:
		return renderYAML(result)
	default:
		return renderTable(result)
	}
}

func renderJSON(result json.RawMessage) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	var decoded interface{}
	if err := json.Unmarshal(result, &decoded); err != nil {
		return fmt.Errorf("decoding result: %w", err)
	}

	if err := encoder.Encode(decoded); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

func renderYAML(result json.RawMessage) error {
	var decoded interface{}
	if err := json.Unmarshal(result, &decoded); err != nil {
		return fmt.Errorf("decoding result: %w", err)
	}

	encoder := yaml.NewEncoder(os.Stdout)
	if err := encoder.Encode(decoded); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return encoder.Close()
}

// renderTable prints collections as ID/Name rows and single objects as
// property/value pairs. Results that fit neither shape fall back to JSON.
func renderTable(result json.RawMessage) error {
	if rows, ok := decodeRows(result); ok {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name")

		for _, row := range rows {
			_ = table.Append(fieldString(row, "id"), displayName(row))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}

	var object map[string]interface{}
	if err := json.Unmarshal(result, &object); err == nil {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		keys := make([]string, 0, len(object))
		for key := range object {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			_ = table.Append(key, valueString(object[key]))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}

	return renderJSON(result)
}

// decodeRows accepts either a bare JSON array or an envelope whose "data"
// field holds the array.
func decodeRows(result json.RawMessage) ([]map[string]interface{}, bool) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(result, &rows); err == nil {
		return rows, true
	}

	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}

	if err := json.Unmarshal(result, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, true
	}

	return nil, false
}

func displayName(row map[string]interface{}) string {
	if name := fieldString(row, "name"); name != NotAvailable {
		return name
	}

	if mainTerm, ok := row["mainTerm"].(map[string]interface{}); ok {
		return fieldString(mainTerm, "value")
	}

	return NotAvailable
}

func fieldString(object map[string]interface{}, key string) string {
	value, ok := object[key]
	if !ok || value == nil {
		return NotAvailable
	}

	return valueString(value)
}

func valueString(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}

		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprintf("%v", typed)
		}

		return string(encoded)
	}
}
