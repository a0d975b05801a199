// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Segmenter: Splits uploaded text into captions and sentences
//   - AnnotationStore: Annotation document persistence (JSON files)
//   - ConfigStore: Application configuration (TOML file)
//   - FileWatcher: Change notification for annotation documents
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
