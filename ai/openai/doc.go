// Package openai implements ai.Embedder using OpenAI-compatible embedding
// APIs via langchaingo. It works with the hosted OpenAI service as well as
// local OpenAI-compatible servers (Ollama, LocalAI, vLLM).
package openai
