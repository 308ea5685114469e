/*
Package textgen defines the contract shared by every name generator in this
module, together with the small amount of machinery they all need: the
acceptance filter applied to candidate strings, the rejection-sampling loop
that drives it, seeded random sources, line-oriented ingestion of training
data, and two generators that carry no model of their own (Composite, which
joins the output of two other generators, and RandomDraw, which returns
training strings verbatim).

Generators are trained once and then queried any number of times. They are
not safe for concurrent use; give each goroutine its own generator, or share
a trained generator behind a lock.
*/
package textgen
