// Package dcbordiag is the root façade over the extended CBOR diagnostic
// notation parser and composer: the five entry points of spec §6, wired
// against a package-level default registry.Environment for callers that
// don't need an isolated one.
//
// This generalizes the teacher's (lukeod/gosmi) root package, which wraps
// its internal parser and exposes a process-wide-registry convenience on
// top of it.
package dcbordiag

import (
	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
	"github.com/blockchaincommons/bc-dcbor-diag-go/parser"
	"github.com/blockchaincommons/bc-dcbor-diag-go/registry"
)

// RegisterTag adds a name/number pair to the default environment's tag
// registry, consulted by named-tag and UR parsing.
func RegisterTag(name string, number uint64) {
	registry.Default().Tags.Register(name, number)
}

// RegisterKnownValue adds a name/number pair to the default environment's
// known-value registry.
func RegisterKnownValue(name string, number uint64) {
	registry.Default().KnownValues.Register(name, number)
}

// ParseItem implements parse_item against the default environment: source
// must contain exactly one well-formed item, trailing whitespace and
// comments permitted.
func ParseItem(source string) (dcbor.Value, error) {
	return parser.ParseItem(source, registry.Default())
}

// ParseItemPartial implements parse_item_partial against the default
// environment, returning how many bytes of source the recognized item
// consumed.
func ParseItemPartial(source string) (dcbor.Value, int, error) {
	return parser.ParseItemPartial(source, registry.Default())
}

// ComposeArray implements compose_array against the default environment.
func ComposeArray(fragments []string) (dcbor.Value, error) {
	return parser.ComposeArray(fragments, registry.Default())
}

// ComposeMap implements compose_map against the default environment.
func ComposeMap(fragments []string) (dcbor.Value, error) {
	return parser.ComposeMap(fragments, registry.Default())
}

// ParseItemWithEnvironment is ParseItem against an explicit environment,
// for callers that need an isolated registry set rather than the
// process-wide default.
func ParseItemWithEnvironment(source string, env *registry.Environment) (dcbor.Value, error) {
	return parser.ParseItem(source, env)
}

// ParseItemPartialWithEnvironment is ParseItemPartial against an explicit
// environment.
func ParseItemPartialWithEnvironment(source string, env *registry.Environment) (dcbor.Value, int, error) {
	return parser.ParseItemPartial(source, env)
}

// ComposeArrayWithEnvironment is ComposeArray against an explicit
// environment.
func ComposeArrayWithEnvironment(fragments []string, env *registry.Environment) (dcbor.Value, error) {
	return parser.ComposeArray(fragments, env)
}

// ComposeMapWithEnvironment is ComposeMap against an explicit environment.
func ComposeMapWithEnvironment(fragments []string, env *registry.Environment) (dcbor.Value, error) {
	return parser.ComposeMap(fragments, env)
}
