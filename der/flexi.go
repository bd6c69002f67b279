package der

// Node is a flexi-decoder tree node: a single DER TLV as read without a
// schema, recursing into children whenever the tag's constructed bit
// (0x20) is set. spec.md §4.6 names a "flexi-decoder" alongside the
// schema'd helpers in der.go for callers that need to inspect a DER blob
// of unknown/variable shape (e.g. PKCS#8's AlgorithmIdentifier
// parameters, which vary per algorithm).
type Node struct {
	Class       byte // 0=universal, 1=application, 2=context, 3=private
	Constructed bool
	TagNumber   int
	RawTag      byte
	Content     []byte // raw content bytes (always populated)
	Children    []*Node
}

// Decode parses the first TLV in b into a Node tree, returning the node
// and any bytes left over after it.
func Decode(b []byte) (*Node, []byte, error) {
	if len(b) == 0 {
		return nil, nil, ErrTruncated
	}
	rawTag := b[0]
	class := rawTag >> 6
	constructed := rawTag&0x20 != 0
	tagNumber := int(rawTag & 0x1f)

	if tagNumber == 0x1f {
		// High-tag-number form, base-128: not needed by any format this
		// module parses (PKCS#8/SPKI/SEC1 only use low-numbered tags),
		// but decoded defensively rather than rejected outright.
		i := 1
		tagNumber = 0
		for i < len(b) {
			tagNumber = tagNumber<<7 | int(b[i]&0x7f)
			highBit := b[i] & 0x80
			i++
			if highBit == 0 {
				break
			}
		}
		b = b[i-1:]
	}

	length, consumed, err := decodeLength(b[1:])
	if err != nil {
		return nil, nil, err
	}
	start := 1 + consumed
	end := start + length
	if end > len(b) {
		return nil, nil, ErrTruncated
	}
	content := b[start:end]
	rest := b[end:]

	node := &Node{
		Class:       class,
		Constructed: constructed,
		TagNumber:   tagNumber,
		RawTag:      rawTag,
		Content:     content,
	}

	if constructed {
		remaining := content
		for len(remaining) > 0 {
			child, tail, err := Decode(remaining)
			if err != nil {
				return nil, nil, err
			}
			node.Children = append(node.Children, child)
			remaining = tail
		}
	}

	return node, rest, nil
}

// DecodeAll parses b as a sequence of top-level TLVs until exhausted.
func DecodeAll(b []byte) ([]*Node, error) {
	var nodes []*Node
	for len(b) > 0 {
		n, rest, err := Decode(b)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		b = rest
	}
	return nodes, nil
}
