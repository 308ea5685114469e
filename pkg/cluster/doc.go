/*
Package cluster generates words by chaining vowel and consonant clusters.

A word is split into maximal runs of vowels and consonants: "skyscrapers"
becomes sk-y-scr-a-p-e-rs. Training records which clusters follow each
cluster (or each short sequence of clusters when the order is above one), and
generation takes a random walk over those transitions, only following paths
seen in the training data. Compared to the character model in package markov
the output stays closer to the source material, since every adjacent pair of
clusters in a result was observed somewhere.
*/
package cluster
