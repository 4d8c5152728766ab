package badger

import "fmt"

// Key prefix for indexed documents. Keys are namespaced by collection so
// multiple collections can share one database directory.
const documentPrefix = "docrec"

// makeDocumentKey generates a key for a document in a collection.
// Format: prefix:collection:id
func makeDocumentKey(collection, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", documentPrefix, collection, id))
}

// makeCollectionPrefix generates the key prefix covering every document in a
// collection.
func makeCollectionPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentPrefix, collection))
}
