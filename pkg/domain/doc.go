/*
Package domain contains the core domain models of the ostia learner.

It defines the words and alphabets a transducer reads and writes, the training
samples it is inferred from, and the Transducer itself. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Word / Alphabet: sequences and ordered sets of opaque symbols.
  - Output: a state's final output, either a defined word or undefined.
  - Sample / TrainingSet: the input/output pairs a transducer is learned from.
  - Transducer: an arena of states with deterministic edges and an Apply operation.
  - LifecycleHooks: callbacks fired while a transducer is being learned.
*/
package domain
