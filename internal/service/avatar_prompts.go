package service

import (
	"fmt"
	"strings"

	"flechazo/internal/domain"
)

// buildSimulationPrompt arma el prompt que pide al LLM simular una primera
// conversacion entre los dos avatares y calificar el resultado por dimension.
func buildSimulationPrompt(profileA domain.Profile, traitsA []domain.Trait, profileB domain.Profile, traitsB []domain.Trait) string {
	var sb strings.Builder

	sb.WriteString("Eres un director de escena. Simula una primera conversacion de unos 8 turnos entre dos avatares de una app de citas.\n\n")

	writeAvatarSection(&sb, "AVATAR A", profileA, traitsA)
	writeAvatarSection(&sb, "AVATAR B", profileB, traitsB)

	sb.WriteString("=== REGLAS ===\n")
	sb.WriteString("1. Cada avatar habla SIEMPRE segun sus rasgos; no los suavices para que congenien.\n")
	sb.WriteString("2. La conversacion debe tener friccion real si los rasgos chocan.\n")
	sb.WriteString("3. Al terminar, califica el encuentro en cada dimension con un valor entre 0.0 y 1.0.\n\n")

	sb.WriteString("Devuelve SOLO un JSON con este formato:\n")
	sb.WriteString(`{
  "transcript": [{"speaker": "a", "content": "..."}, {"speaker": "b", "content": "..."}],
  "metrics": {"personality": 0.7, "communication": 0.6, "values": 0.8, "lifestyle": 0.5},
  "summary": "una frase sobre como fue el encuentro"
}`)

	return sb.String()
}

func writeAvatarSection(sb *strings.Builder, title string, profile domain.Profile, traits []domain.Trait) {
	sb.WriteString(fmt.Sprintf("=== %s: %s ===\n", title, profile.DisplayName))
	if strings.TrimSpace(profile.Bio) != "" {
		sb.WriteString(fmt.Sprintf("Bio: %s\n", profile.Bio))
	}
	sb.WriteString(fmt.Sprintf("Big Five: openness=%d, conscientiousness=%d, extraversion=%d, agreeableness=%d, neuroticism=%d (0-100)\n",
		profile.Big5.Openness,
		profile.Big5.Conscientiousness,
		profile.Big5.Extraversion,
		profile.Big5.Agreeableness,
		profile.Big5.Neuroticism,
	))
	for _, t := range traits {
		sb.WriteString(fmt.Sprintf("- [%s] %s: %d/100\n", t.Category, t.Trait, t.Value))
	}
	sb.WriteString("\n")
}
