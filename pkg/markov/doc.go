/*
Package markov generates new words from a small corpus of examples using a
multi-order character Markov model with a simplified Katz back-off scheme.

Training records, for every context of one to Order characters, which
characters were seen to follow it. Every unseen follower gets a small prior
weight, so each single-character context covers the whole alphabet and
sampling can always back off to a shorter context when a longer one was never
observed. Candidates are generated until one passes the configured length
bounds and start/end filters.

The model is kept in memory. Use Snapshot and Restore, or the store package,
to persist a trained Generator.
*/
package markov
