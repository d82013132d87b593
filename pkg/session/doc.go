/*
Package session serializes concurrent updates to stored training sets.

A training session grows as new observations arrive: callers append pairs
and relearn. The Manager makes those read-modify-write cycles safe within
one process through per-name locks and, optionally, across replicas through
a ports.DistributedLocker.
*/
package session
