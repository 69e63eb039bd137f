package services

import (
	"fmt"
	"strings"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
)

// tutorSystemPrompt constrains the assistant to Socratic, non-solving
// behaviour. The model must reply with a JSON object so the pedagogical
// classification travels with the message.
const tutorSystemPrompt = `Eres un tutor socrático de ciencias para estudiantes de secundaria.
Guías al estudiante con preguntas; NUNCA resuelves el problema ni entregas respuestas directas.
Anima al estudiante a observar, formular hipótesis, diseñar experimentos y analizar evidencia.
Responde siempre en español, en un tono cercano y alentador, con máximo 3 oraciones.

Responde únicamente con un objeto JSON:
{"message": "...", "interaction_type": "clarification|hypothesis_probe|evidence_probe|metacognition|encouragement", "cognitive_dimension": "observacion|hipotesis|experimentacion|analisis|comunicacion", "intervention_strategy": "..."}`

// buildTutorPrompt assembles the single user message for a tutor turn:
// notebook state, retrieved context with similarity scores, the windowed
// dialogue history, and the learner profile.
func buildTutorPrompt(
	attempt *domain.Attempt,
	studentMessage string,
	contextChunks []domain.RetrievedChunk,
	history []*domain.Interaction,
	profile *domain.LearnerProfile,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Sección actual\n%s\n\n", sectionOrDefault(attempt.CurrentSection))

	b.WriteString("## Bitácora del estudiante\n")
	writeNotebook(&b, attempt.Notebook)
	b.WriteString("\n")

	if len(contextChunks) > 0 {
		b.WriteString("## Contexto del artículo (fragmentos relevantes)\n")
		for _, rc := range contextChunks {
			fmt.Fprintf(&b, "[fragmento %d, similitud %.2f] %s\n", rc.ChunkIndex, rc.Similarity, rc.Content)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("## Contexto del artículo\n(sin fragmentos relevantes; guía con preguntas generales)\n\n")
	}

	if profile != nil && len(profile.Scores) > 0 {
		b.WriteString("## Perfil del estudiante\n")
		for _, dim := range domain.DimensionOrder {
			if score, ok := profile.Scores[dim]; ok {
				fmt.Fprintf(&b, "- %s: %.0f/100\n", dim, score)
			}
		}
		b.WriteString("\n")
	}

	if len(history) > 0 {
		b.WriteString("## Conversación reciente\n")
		for _, in := range history {
			speaker := "Estudiante"
			if in.Role == domain.RoleTutor {
				speaker = "Tutor"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, in.Message)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Mensaje del estudiante\n%s\n", studentMessage)

	return b.String()
}

func writeNotebook(b *strings.Builder, notebook domain.Notebook) {
	writeField := func(label, value string) {
		if value == "" {
			value = "(vacío)"
		}
		fmt.Fprintf(b, "- %s: %s\n", label, value)
	}
	writeField("Pregunta", notebook.Question)
	writeField("Hipótesis", strings.Join(notebook.Hypotheses, "; "))
	writeField("Experimentos", strings.Join(notebook.Experiments, "; "))
	writeField("Observaciones", strings.Join(notebook.Observations, "; "))
	writeField("Conclusiones", notebook.Conclusions)
}

func sectionOrDefault(section string) string {
	if section == "" {
		return "exploracion"
	}
	return section
}

// problemSystemPrompt requests a structured open-ended problem.
const problemSystemPrompt = `Eres un diseñador de problemas STEM abiertos para estudiantes de secundaria.
Genera problemas novedosos, contextualizados en situaciones reales, sin solución única.
Responde únicamente con un objeto JSON:
{"title": "...", "context": "...", "challenge": "...", "scaffolding": {"inicial": "...", "intermedio": "...", "avanzado": "..."}, "expected_approaches": ["..."], "metacognitive_prompts": ["..."]}`

// buildProblemPrompt assembles the generation request for a problem
// targeting the learner's weakest cognitive dimensions.
func buildProblemPrompt(req problemParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tipo de problema: %s\n", req.problemType)
	fmt.Fprintf(&b, "Dificultad: %s\n", req.difficulty)

	if len(req.targets) > 0 {
		names := make([]string, len(req.targets))
		for i, dim := range req.targets {
			names[i] = string(dim)
		}
		fmt.Fprintf(&b, "Dimensiones cognitivas a reforzar: %s\n", strings.Join(names, ", "))
	}

	if req.articleContext != "" {
		fmt.Fprintf(&b, "\nContexto del artículo de referencia:\n%s\n", req.articleContext)
	}

	b.WriteString("\nDiseña un problema abierto que ejercite esas dimensiones.")
	return b.String()
}

// hintSystemPrompt constrains hint generation to short Socratic nudges.
const hintSystemPrompt = `Eres un tutor socrático. Da una pista breve (2-3 oraciones) que oriente al estudiante
hacia el siguiente paso de razonamiento. NUNCA reveles la solución ni hagas el cálculo por el estudiante.
Responde en español, en texto plano.`

// buildHintPrompt assembles the hint request for a problem in progress.
func buildHintPrompt(problem *domain.ProblemStatement, attemptSnapshot string, hintLevel int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Problema: %s\n%s\n\nDesafío: %s\n", problem.Title, problem.Context, problem.Challenge)
	fmt.Fprintf(&b, "\nAvance del estudiante:\n%s\n", attemptSnapshot)
	fmt.Fprintf(&b, "\nNivel de pista solicitado: %d de 3 (1 = sutil, 3 = más concreta, nunca la solución).\n", hintLevel)

	return b.String()
}
