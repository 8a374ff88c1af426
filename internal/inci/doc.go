// Package inci turns free-text ingredient labels into canonical lookup tokens.
//
// Parsing runs in three stages:
//
//   - StripPrefix removes one leading label such as "Ingredients:"
//   - Split breaks the text on commas, semicolons and line breaks
//   - Normalizer reduces each piece to a canonical key through an
//     ordered list of Rules
//
// Every stage is a total function. Malformed input degrades to
// dropped tokens, never to an error.
package inci
