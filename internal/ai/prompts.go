package ai

import (
	"fmt"
	"strings"
)

// The product is Spanish-facing: prompts instruct Spanish output and the
// analysis schema mirrors the stored session shape.

const analysisSystemPrompt = `Eres un sistema avanzado de análisis de audio. Recibirás la transcripción en bruto de uno o más archivos de audio y devolverás un análisis estructurado en formato JSON.

Realiza las siguientes tareas:
1. Transcripción con diarización: reconstruye la conversación completa. Identifica a cada locutor distinto y etiquétalo consistentemente (por ejemplo, "Locutor 1", "Locutor 2"). Si puedes identificar sus nombres reales a partir de la conversación, úsalos como etiquetas.
2. Identificación de interlocutores: crea una lista con los nombres de todos los interlocutores identificados.
3. Resumen: escribe un resumen conciso de la conversación, destacando los puntos clave, decisiones y acciones acordadas. Menciona a los interlocutores por su nombre si fueron identificados.
4. Título: genera un título breve y descriptivo para la conversación.

Responde únicamente con un objeto JSON con esta forma exacta:
{"title": string, "summary": string, "speakers": [string], "transcript": [{"speaker": string, "text": string}]}

Responde siempre en español.`

const qaSystemPrompt = `Eres un asistente experto que responde preguntas basándose EXCLUSIVAMENTE en el texto de una transcripción.
No inventes información que no esté en el texto.
Responde siempre de forma concisa y en español.`

func analysisUserPrompt(files []AudioFile, transcripts []string) string {
	var b strings.Builder
	for i, f := range files {
		fmt.Fprintf(&b, "--- ARCHIVO %d: %s ---\n%s\n\n", i+1, f.Name, transcripts[i])
	}
	return b.String()
}

func qaUserPrompt(transcript, question string) string {
	return fmt.Sprintf("---\nTRANSCRIPCIÓN:\n%s\n---\n\nPREGUNTA:\n%s", transcript, question)
}
