package vdom

// If returns the node if condition is true, nil (a placeholder) otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// When is like If but with lazy evaluation.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to descriptors. Unlike the element factories it keeps
// nil results, so a hole stays a hole across renders.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, len(items))
	for i, item := range items {
		result[i] = fn(item, i)
	}
	return result
}

// Keyed maps a slice to keyed descriptors using keyFn for identity.
func Keyed[T any](items []T, keyFn func(item T) string, fn func(item T) *VNode) []*VNode {
	result := make([]*VNode, len(items))
	for i, item := range items {
		node := fn(item)
		if node != nil {
			node.Key = keyFn(item)
		}
		result[i] = node
	}
	return result
}
