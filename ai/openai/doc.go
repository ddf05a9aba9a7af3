// Package openai implements the ai interfaces over OpenAI-compatible APIs,
// including local servers such as Ollama, LocalAI and vLLM.
package openai
