// Package merkletree implements the fixed-depth, append-only commitment
// tree (§4.6): BLAKE2s-256 internal hashing, precomputed empty-subtree
// hashes so an unfilled sibling costs O(1) to look up, append/root/witness/
// verify/size/truncate_to, and the Fresh/Dirty/Clean persistence state
// machine.
package merkletree
