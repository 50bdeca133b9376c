package merkle

import (
	"errors"
	"math/big"
	"sync"

	"idproof/src/circuits"
	"idproof/src/claims"
)

var (
	ErrUnknownGroup  = errors.New("unknown nationality group")
	ErrNotAMember    = errors.New("code is not a member of the group")
	ErrGroupTooLarge = errors.New("group exceeds tree capacity")
)

// Proof is a Merkle path from a leaf to the root. PathIndices[i] is 0 when
// the node at level i is the left child.
type Proof struct {
	PathElements []*big.Int
	PathIndices  []int
}

// Tree is a fixed-depth Merkle tree over nationality codes. Leaves are
// MiMC(code); empty slots hold the sentinel MiMC(0); parents are
// MiMC(left, right).
type Tree struct {
	levels    [][]*big.Int
	positions map[int64]int
}

// BuildTreeFromCodes builds a tree over the given codes in order, padding to
// full capacity with sentinel leaves.
func BuildTreeFromCodes(codes []int64) (*Tree, error) {
	capacity := 1 << circuits.MembershipTreeDepth
	if len(codes) > capacity {
		return nil, ErrGroupTooLarge
	}

	sentinel, err := claims.HashFields(big.NewInt(0))
	if err != nil {
		return nil, err
	}

	leaves := make([]*big.Int, capacity)
	positions := make(map[int64]int, len(codes))
	for i, code := range codes {
		leaf, err := claims.HashFields(big.NewInt(code))
		if err != nil {
			return nil, err
		}
		leaves[i] = leaf
		positions[code] = i
	}
	for i := len(codes); i < capacity; i++ {
		leaves[i] = sentinel
	}

	levels := make([][]*big.Int, circuits.MembershipTreeDepth+1)
	levels[0] = leaves
	for level := 1; level <= circuits.MembershipTreeDepth; level++ {
		below := levels[level-1]
		nodes := make([]*big.Int, len(below)/2)
		for i := range nodes {
			parent, err := claims.HashFields(below[2*i], below[2*i+1])
			if err != nil {
				return nil, err
			}
			nodes[i] = parent
		}
		levels[level] = nodes
	}

	return &Tree{levels: levels, positions: positions}, nil
}

func (t *Tree) Root() *big.Int {
	return t.levels[circuits.MembershipTreeDepth][0]
}

// Prove returns the Merkle path for the given code.
func (t *Tree) Prove(code int64) (*Proof, error) {
	pos, ok := t.positions[code]
	if !ok {
		return nil, ErrNotAMember
	}

	proof := &Proof{
		PathElements: make([]*big.Int, circuits.MembershipTreeDepth),
		PathIndices:  make([]int, circuits.MembershipTreeDepth),
	}
	for level := 0; level < circuits.MembershipTreeDepth; level++ {
		sibling := pos ^ 1
		proof.PathElements[level] = t.levels[level][sibling]
		proof.PathIndices[level] = pos & 1
		pos >>= 1
	}
	return proof, nil
}

// VerifyProof recomputes the root from a code and its path.
func VerifyProof(root *big.Int, code int64, proof *Proof) (bool, error) {
	node, err := claims.HashFields(big.NewInt(code))
	if err != nil {
		return false, err
	}
	for level := 0; level < circuits.MembershipTreeDepth; level++ {
		left, right := node, proof.PathElements[level]
		if proof.PathIndices[level] == 1 {
			left, right = right, left
		}
		node, err = claims.HashFields(left, right)
		if err != nil {
			return false, err
		}
	}
	return node.Cmp(root) == 0, nil
}

// Accumulator caches the trees of the shipped nationality groups. Group
// membership is fixed at startup, so trees are built once and shared.
type Accumulator struct {
	mu    sync.Mutex
	trees map[string]*Tree
}

func NewAccumulator() *Accumulator {
	return &Accumulator{trees: make(map[string]*Tree)}
}

func (a *Accumulator) TreeFor(group string) (*Tree, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if tree, ok := a.trees[group]; ok {
		return tree, nil
	}
	codes, ok := Groups[group]
	if !ok {
		return nil, ErrUnknownGroup
	}
	tree, err := BuildTreeFromCodes(codes)
	if err != nil {
		return nil, err
	}
	a.trees[group] = tree
	return tree, nil
}

func (a *Accumulator) RootFor(group string) (*big.Int, error) {
	tree, err := a.TreeFor(group)
	if err != nil {
		return nil, err
	}
	return tree.Root(), nil
}

// ProveMembership returns the path of a code inside a group, or
// ErrNotAMember when the code is absent.
func (a *Accumulator) ProveMembership(group string, code int64) (*Proof, error) {
	tree, err := a.TreeFor(group)
	if err != nil {
		return nil, err
	}
	return tree.Prove(code)
}
