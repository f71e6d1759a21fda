// Package ai defines the external-capability contracts the pipeline
// depends on: text embedding, ticket classification, and answer
// generation. Concrete implementations live in subpackages (openai,
// rule, mock); the rest of the system depends only on the interfaces
// defined here.
package ai
