package service

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// simulationOutcome es la estructura esperada del LLM al cerrar una simulacion.
type simulationOutcome struct {
	Transcript []simulationTurn   `json:"transcript"`
	Metrics    map[string]float64 `json:"metrics"`
	Summary    string             `json:"summary"`
}

type simulationTurn struct {
	Speaker string `json:"speaker"` // "a" o "b"
	Content string `json:"content"`
}

var errOutcomeEmpty = errors.New("simulation outcome empty")

// parseSimulationOutcome limpia la respuesta cruda del LLM (fences, texto
// alrededor) y extrae el primer objeto JSON valido. Las metricas se
// normalizan a [0,1].
func parseSimulationOutcome(raw string) (simulationOutcome, error) {
	cleaned := cleanLLMJSONResponse(raw)
	jsonText := extractFirstJSONObject(cleaned)
	if jsonText == "" {
		return simulationOutcome{}, errOutcomeEmpty
	}

	var outcome simulationOutcome
	if err := json.Unmarshal([]byte(jsonText), &outcome); err != nil {
		return simulationOutcome{}, err
	}

	if outcome.Metrics == nil {
		outcome.Metrics = make(map[string]float64)
	}
	for name, v := range outcome.Metrics {
		outcome.Metrics[name] = clamp01(v)
	}

	return outcome, nil
}

// cleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el contenido usable.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// BOM (por si acaso)
	s = strings.TrimPrefix(s, "\uFEFF")

	// Quitar fences tipo ```json ... ``` o ``` ... ```
	reStart := regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	reEnd := regexp.MustCompile("(?is)\\s*```\\s*$")
	s = reStart.ReplaceAllString(s, "")
	s = reEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	return ""
}
