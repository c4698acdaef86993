package service

import (
	"github.com/google/uuid"
	"playto.com/communityfeed/internal/dto"
)

// BuildCommentTree assembles a nested reply forest from a flat slice in one
// pass over an id index, without touching the store. The input must already
// be sorted by created_at ascending; both the root list and every child list
// then come out chronological with no extra sorting.
//
// A node whose parent id is set but not present in the input (the parent was
// filtered out of this view) is promoted to a root rather than dropped: a
// comment is never lost, only relocated.
func BuildCommentTree(comments []*dto.CommentNode) []*dto.CommentNode {
	byID := make(map[uuid.UUID]*dto.CommentNode, len(comments))
	for _, c := range comments {
		c.Replies = []*dto.CommentNode{}
		byID[c.ID] = c
	}

	roots := make([]*dto.CommentNode, 0)
	for _, c := range comments {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}

	return roots
}
