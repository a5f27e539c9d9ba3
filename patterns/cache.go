package patterns

import (
	"regexp"

	"github.com/maypok86/otter"
)

// CacheCapacity is the number of compiled programs kept by the shared cache.
const CacheCapacity = 1024

var compiled = func() otter.Cache[string, *regexp.Regexp] {
	c, err := otter.MustBuilder[string, *regexp.Regexp](CacheCapacity).
		CollectStats().
		Build()
	if err != nil {
		panic("patterns: building compile cache: " + err.Error())
	}
	return c
}()

// compile returns the cached program for expr, compiling it on a miss.
// Invalid expressions are never cached.
func compile(expr string) (*regexp.Regexp, error) {
	if re, ok := compiled.Get(expr); ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	compiled.Set(expr, re)
	return re, nil
}

// CacheStats reports hits and misses of the shared compile cache.
func CacheStats() (hits, misses int64) {
	s := compiled.Stats()
	return s.Hits(), s.Misses()
}
