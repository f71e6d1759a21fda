// Package openai implements the ai capability interfaces against any
// OpenAI-compatible API (OpenAI, Ollama, LocalAI, vLLM).
//
// The classifier requests structured JSON output and defensively
// repairs and coerces what comes back: markdown fences are stripped,
// common JSON defects fixed, and out-of-enum labels mapped to the
// nearest valid value with a confidence penalty.
package openai
