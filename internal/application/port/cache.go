package port

// Cache is a bounded key-value store safe for concurrent use. The in-memory
// burnable stores (visited links, autoconsent) are built on it.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Remove(key K)
	Len() int
}
