// Package machine is the vending transaction engine.
//
// A Machine owns three stores: the product stock, the change reserve and the
// coins the current customer has inserted. Purchase authorizes a vend
// against all three and either commits every mutation or none of them.
// Change is chosen greedily, largest denomination first, from the inserted
// coins and the reserve together.
//
// A Machine is not safe for concurrent use. Callers that share one must
// serialize access themselves.
package machine
