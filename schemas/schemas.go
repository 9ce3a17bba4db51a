// Package schemas embeds the JSON Schemas that define the engine's file contracts.
package schemas

import "embed"

// AnswerStore is the schema file name for answer store documents
const AnswerStore = "answer_store.schema.json"

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
