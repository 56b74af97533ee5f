package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"github.com/rogerjeasy/bav-roger/internal/domain"
)

// fakeAPI implements dynamodbAPI with canned responses and captured inputs.
type fakeAPI struct {
	putInputs []*dynamodb.PutItemInput
	putErr    error
	getOut    *dynamodb.GetItemOutput
	getIn     *dynamodb.GetItemInput
	getErr    error
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putInputs = append(f.putInputs, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getIn = in
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func testMessage() domain.ChatMessage {
	return domain.ChatMessage{
		ID:        "msg-1",
		Role:      domain.RoleUser,
		Content:   "What do you do?",
		ModelID:   "gpt-4",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func strVal(t *testing.T, item map[string]types.AttributeValue, key string) string {
	t.Helper()
	v, err := strAttr(item, key)
	require.NoError(t, err)
	return v
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "table")
	require.Error(t, err)

	_, err = New(&fakeAPI{}, "  ")
	require.Error(t, err)
}

func TestSaveChatMessage_HappyPath(t *testing.T) {
	api := &fakeAPI{}
	client, err := New(api, "portfolio-state")
	require.NoError(t, err)

	require.NoError(t, client.SaveChatMessage(context.Background(), testMessage()))

	require.Len(t, api.putInputs, 1)
	in := api.putInputs[0]
	require.Equal(t, "portfolio-state", *in.TableName)
	require.Equal(t, "attribute_not_exists(PK) AND attribute_not_exists(SK)", *in.ConditionExpression)
	require.Equal(t, "CHAT#msg-1", strVal(t, in.Item, "PK"))
	require.Equal(t, "META#", strVal(t, in.Item, "SK"))
	require.Equal(t, "user", strVal(t, in.Item, "role"))
	require.Equal(t, "What do you do?", strVal(t, in.Item, "content"))
	require.Equal(t, "gpt-4", strVal(t, in.Item, "aiModel"))
	require.Contains(t, in.Item, "ttl")
}

func TestSaveChatMessage_Validation(t *testing.T) {
	client, err := New(&fakeAPI{}, "t")
	require.NoError(t, err)

	msg := testMessage()
	msg.ID = ""
	require.Error(t, client.SaveChatMessage(context.Background(), msg))

	msg = testMessage()
	msg.Content = ""
	require.Error(t, client.SaveChatMessage(context.Background(), msg))

	msg = testMessage()
	msg.Role = "moderator"
	err = client.SaveChatMessage(context.Background(), msg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid role")
}

func TestSaveChatMessage_ApiError(t *testing.T) {
	client, err := New(&fakeAPI{putErr: errors.New("boom")}, "t")
	require.NoError(t, err)

	err = client.SaveChatMessage(context.Background(), testMessage())
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
}

func TestSaveContact_HappyPath(t *testing.T) {
	api := &fakeAPI{}
	client, err := New(api, "portfolio-state")
	require.NoError(t, err)

	err = client.SaveContact(context.Background(), domain.ContactSubmission{
		ID:        "contact-1",
		Name:      "Al",
		Email:     "a@b.com",
		Subject:   "Hello!",
		Message:   "1234567890",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	require.Len(t, api.putInputs, 1)
	in := api.putInputs[0]
	require.Equal(t, "CONTACT#contact-1", strVal(t, in.Item, "PK"))
	require.Equal(t, "META#", strVal(t, in.Item, "SK"))
	require.Equal(t, "Al", strVal(t, in.Item, "name"))
	require.Equal(t, "a@b.com", strVal(t, in.Item, "email"))
	require.NotContains(t, in.Item, "ttl", "contact submissions must not expire")
}

func TestSaveContact_RequiresID(t *testing.T) {
	client, err := New(&fakeAPI{}, "t")
	require.NoError(t, err)
	require.Error(t, client.SaveContact(context.Background(), domain.ContactSubmission{}))
}

func TestGetChatMessage_RoundTrip(t *testing.T) {
	api := &fakeAPI{getOut: &dynamodb.GetItemOutput{Item: chatMessageItem(testMessage())}}
	client, err := New(api, "portfolio-state")
	require.NoError(t, err)

	msg, err := client.GetChatMessage(context.Background(), "msg-1")
	require.NoError(t, err)
	require.Equal(t, "msg-1", msg.ID)
	require.Equal(t, domain.RoleUser, msg.Role)
	require.Equal(t, "What do you do?", msg.Content)
	require.Equal(t, "gpt-4", msg.ModelID)
	require.Equal(t, testMessage().CreatedAt, msg.CreatedAt)

	require.Equal(t, "CHAT#msg-1", api.getIn.Key["PK"].(*types.AttributeValueMemberS).Value)
}

func TestGetChatMessage_NotFound(t *testing.T) {
	client, err := New(&fakeAPI{getOut: &dynamodb.GetItemOutput{}}, "t")
	require.NoError(t, err)

	_, err = client.GetChatMessage(context.Background(), "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}
