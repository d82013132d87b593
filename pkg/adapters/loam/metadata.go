package loam

import "github.com/aretw0/ostia/pkg/dsl"

// TrainingMetadata is the frontmatter of a training set document. It uses
// the dsl document keys (name, separator, input_alphabet, output_alphabet, sample);
// the document body is free-form notes and is ignored.
type TrainingMetadata = dsl.Document
