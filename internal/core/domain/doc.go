// Package domain defines the core entities for textannot.
//
// This package is the innermost layer of the hexagon. It defines the
// fundamental types:
//
//   - Document: A segmented upload (captions and their sentences)
//   - Key: The (caption, sentence) composite key
//   - Annotation: A Subject-Predicate-Object triple bound to a sentence
//   - AnnotationFile: The persisted annotation document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
