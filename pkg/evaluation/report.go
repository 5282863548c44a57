package evaluation

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// NoValidPairsMessage is printed when a run evaluated nothing.
const NoValidPairsMessage = "No valid pairs found for evaluation."

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Write renders s in the requested format. Text is the human report; YAML and
// JSON carry the same numbers rounded to four decimals plus skip counts.
func Write(w io.Writer, s Summary, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return WriteText(w, s)
	case FormatYAML:
		data, err := yaml.Marshal(rounded(s))
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(rounded(s), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func WriteText(w io.Writer, s Summary) error {
	if s.Empty() {
		_, err := fmt.Fprintln(w, NoValidPairsMessage)
		return err
	}
	_, err := fmt.Fprintf(w,
		"Evaluated %d valid page reconstructions:\n"+
			"Average BLEU Score   : %.4f\n"+
			"Average ROUGE-1 F1   : %.4f\n"+
			"Average ROUGE-L F1   : %.4f\n",
		s.Evaluated, s.AvgBLEU, s.AvgRouge1F1, s.AvgRougeLF1)
	return err
}

func rounded(s Summary) Summary {
	s.AvgBLEU = round4(s.AvgBLEU)
	s.AvgRouge1F1 = round4(s.AvgRouge1F1)
	s.AvgRougeLF1 = round4(s.AvgRougeLF1)
	return s
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
