package domain

// BuiltinCollections returns the compiled-in collection table.
// The set is fixed at startup and read-only for the rest of the process;
// callers receive a fresh slice on every call.
func BuiltinCollections() []CollectionSpec {
	return []CollectionSpec{
		// OpenAI embeddings dimension.
		mustSpec("documents", 1536, DistanceCosine, []Field{
			mustField("title", FieldText),
			mustField("content", FieldText),
			mustField("source", FieldKeyword),
			mustField("timestamp", FieldInteger),
			mustField("metadata", FieldJSON),
		}),
		// Sentence-transformers dimension.
		mustSpec("chat_history", 768, DistanceCosine, []Field{
			mustField("user", FieldKeyword),
			mustField("message", FieldText),
			mustField("response", FieldText),
			mustField("timestamp", FieldInteger),
			mustField("session_id", FieldKeyword),
		}),
		mustSpec("code_snippets", 768, DistanceCosine, []Field{
			mustField("language", FieldKeyword),
			mustField("code", FieldText),
			mustField("description", FieldText),
			mustField("tags", FieldKeywordArray),
			mustField("project", FieldKeyword),
		}),
		// Custom model dimension.
		mustSpec("knowledge_base", 1024, DistanceCosine, []Field{
			mustField("title", FieldText),
			mustField("content", FieldText),
			mustField("category", FieldKeyword),
			mustField("tags", FieldKeywordArray),
			mustField("url", FieldKeyword),
			mustField("last_updated", FieldInteger),
		}),
	}
}

func mustSpec(name string, size int, distance Distance, fields []Field) CollectionSpec {
	s, err := NewCollectionSpec(name, size, distance, fields)
	if err != nil {
		panic("builtin collection table: " + err.Error())
	}
	return s
}

func mustField(name string, ft FieldType) Field {
	f, err := NewField(name, ft)
	if err != nil {
		panic("builtin collection table: " + err.Error())
	}
	return f
}
