package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"playto.com/communityfeed/internal/dto"
	"playto.com/communityfeed/internal/repository"
	"playto.com/communityfeed/pkg/apperror"
)

func newTestCommentService(db *gorm.DB) CommentService {
	return NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
		repository.NewLikeRepository(db),
		nil,
	)
}

func TestCreateComment_TopLevel(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "a post")

	resp, err := svc.Create(context.Background(), author.ID, dto.CreateCommentRequest{
		PostID:  post.ID.String(),
		Content: "first!",
	})
	require.NoError(t, err)
	assert.Equal(t, post.ID, resp.PostID)
	assert.Equal(t, author.ID, resp.AuthorID)
	assert.Equal(t, "author", resp.AuthorUsername)
	assert.Nil(t, resp.ParentID)
	assert.Equal(t, "first!", resp.Content)
}

func TestCreateComment_Reply(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "a post")
	parent := createTestComment(t, db, author, post, nil, "parent")

	resp, err := svc.Create(context.Background(), author.ID, dto.CreateCommentRequest{
		PostID:   post.ID.String(),
		ParentID: parent.ID.String(),
		Content:  "a reply",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ParentID)
	assert.Equal(t, parent.ID, *resp.ParentID)
}

func TestCreateComment_ParentOnDifferentPost(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)

	author := createTestUser(t, db, "author")
	postA := createTestPost(t, db, author, "post a")
	postB := createTestPost(t, db, author, "post b")
	parentOnA := createTestComment(t, db, author, postA, nil, "on post a")

	_, err := svc.Create(context.Background(), author.ID, dto.CreateCommentRequest{
		PostID:   postB.ID.String(),
		ParentID: parentOnA.ID.String(),
		Content:  "crossed wires",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "temp")
	require.NoError(t, db.Delete(post).Error)

	_, err := svc.Create(context.Background(), author.ID, dto.CreateCommentRequest{
		PostID:  post.ID.String(),
		Content: "to nowhere",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateComment_SanitizesContent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "a post")

	resp, err := svc.Create(context.Background(), author.ID, dto.CreateCommentRequest{
		PostID:  post.ID.String(),
		Content: "<script>alert(1)</script>hello   there",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", resp.Content)
}

func TestListComments_BulkAnnotations(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)
	likes := newTestLikeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	other := createTestUser(t, db, "other")
	post := createTestPost(t, db, author, "a post")

	parent := createTestComment(t, db, author, post, nil, "parent")
	createTestComment(t, db, author, post, parent, "reply one")
	createTestComment(t, db, author, post, parent, "reply two")

	mustLikeComment(t, likes, viewer, parent)
	mustLikeComment(t, likes, other, parent)

	resps, err := svc.List(ctx, &post.ID, &viewer.ID)
	require.NoError(t, err)
	require.Len(t, resps, 3)

	byContent := map[string]dto.CommentResponse{}
	for _, r := range resps {
		byContent[r.Content] = r
	}

	parentResp := byContent["parent"]
	assert.Equal(t, int64(2), parentResp.LikeCount)
	assert.Equal(t, int64(2), parentResp.ReplyCount)
	assert.True(t, parentResp.IsLikedByMe)

	replyResp := byContent["reply one"]
	assert.Equal(t, int64(0), replyResp.LikeCount)
	assert.Equal(t, int64(0), replyResp.ReplyCount)
	assert.False(t, replyResp.IsLikedByMe)
}

func TestListComments_AnonymousViewer(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)
	likes := newTestLikeService(db)

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, author, "a post")
	comment := createTestComment(t, db, author, post, nil, "hello")
	mustLikeComment(t, likes, fan, comment)

	resps, err := svc.List(context.Background(), &post.ID, nil)
	require.NoError(t, err)
	require.Len(t, resps, 1)
	assert.Equal(t, int64(1), resps[0].LikeCount)
	assert.False(t, resps[0].IsLikedByMe)
}

func TestGetTree_NestsReplies(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "a post")

	root1 := createTestComment(t, db, author, post, nil, "root one")
	child := createTestComment(t, db, author, post, root1, "child")
	grandchild := createTestComment(t, db, author, post, child, "grandchild")
	root2 := createTestComment(t, db, author, post, nil, "root two")

	tree, err := svc.GetTree(ctx, post.ID, nil)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, root1.ID, tree[0].ID)
	assert.Equal(t, root2.ID, tree[1].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, child.ID, tree[0].Replies[0].ID)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, grandchild.ID, tree[0].Replies[0].Replies[0].ID)
	assert.Empty(t, tree[1].Replies)
}

func TestGetTree_PostNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCommentService(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "temp")
	require.NoError(t, db.Delete(post).Error)

	_, err := svc.GetTree(context.Background(), post.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
