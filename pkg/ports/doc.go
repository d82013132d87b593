/*
Package ports defines the driven ports (interfaces) for the ostia learner.

These interfaces decouple the learning core from external implementations,
allowing training sets to come from files, Loam workspaces, Redis or memory,
and letting the HTTP and MCP adapters drive any learner implementation.

# Key Interfaces

  - TrainingLoader: Reads named training sets (e.g., from Loam or YAML files).
  - TrainingStore: A TrainingLoader that can also save and delete training sets.
  - DistributedLocker: Serializes updates to one training set across replicas.
  - Learner: Infers a transducer from a training set.
*/
package ports
