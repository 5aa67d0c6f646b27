package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testIdentity = models.Identity{UserID: "user-1"}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

// newTestContactService — сервис с моками и предсказуемыми id
func newTestContactService(t *testing.T) (*contactService, *mocks.MockContactRepository, *mocks.MockContactListener) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockContactRepository(ctrl)
	listenerMock := mocks.NewMockContactListener(ctrl)

	service := NewContactService(repoMock, listenerMock, testLogger()).(*contactService)
	n := 0
	service.newID = func() string {
		n++
		return fmt.Sprintf("c%d", n)
	}
	return service, repoMock, listenerMock
}

func TestListContacts_FromCache(t *testing.T) {
	service, repoMock, _ := newTestContactService(t)
	ctx := context.Background()
	cached := models.ContactList{{ID: "c1", Name: "Mom", IsPrimary: true}}

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(cached, nil).Times(1)

	list, err := service.ListContacts(ctx, testIdentity)

	require.NoError(t, err)
	assert.Equal(t, cached, list)
}

func TestListContacts_FromDB(t *testing.T) {
	service, repoMock, _ := newTestContactService(t)
	ctx := context.Background()
	stored := models.ContactList{{ID: "c1", Name: "Mom"}}

	// 1. Промах кеша
	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(nil, nil).Times(1)
	// 2. Чтение профиля
	repoMock.EXPECT().GetProfile(ctx, "user-1").Return(&models.Profile{UserID: "user-1", EmergencyContacts: stored}, nil).Times(1)
	// 3. Запись в кеш
	repoMock.EXPECT().SetContactsCache(ctx, "user-1", stored).Return(nil).Times(1)

	list, err := service.ListContacts(ctx, testIdentity)

	require.NoError(t, err)
	assert.Equal(t, stored, list)
}

func TestListContacts_MissingProfileIsEmpty(t *testing.T) {
	service, repoMock, _ := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(nil, errors.New("redis down")).Times(1)
	repoMock.EXPECT().GetProfile(ctx, "user-1").Return(&models.Profile{UserID: "user-1"}, nil).Times(1)
	repoMock.EXPECT().SetContactsCache(ctx, "user-1", models.ContactList{}).Return(nil).Times(1)

	list, err := service.ListContacts(ctx, testIdentity)

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestAddContact_LoadFailure(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(nil, nil)
	repoMock.EXPECT().GetProfile(ctx, "user-1").Return(nil, errors.New("connection refused"))
	listenerMock.EXPECT().OnContactError("user-1", models.KindStorageFailure, gomock.Any())

	_, err := service.AddContact(ctx, testIdentity, models.ContactFields{Name: "Mom"})

	assert.ErrorIs(t, err, models.ErrStorageFailure)
}

func TestListContacts_StorageFailure(t *testing.T) {
	service, repoMock, _ := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(nil, nil).Times(1)
	repoMock.EXPECT().GetProfile(ctx, "user-1").Return(nil, errors.New("connection refused")).Times(1)

	_, err := service.ListContacts(ctx, testIdentity)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorageFailure)
}

func TestContactService_Unauthenticated(t *testing.T) {
	service, _, _ := newTestContactService(t)
	ctx := context.Background()
	anon := models.Identity{}

	_, err := service.ListContacts(ctx, anon)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = service.AddContact(ctx, anon, models.ContactFields{Name: "Mom"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = service.EditContact(ctx, anon, "c1", models.ContactFields{Name: "Mom"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = service.DeleteContact(ctx, anon, "c1")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = service.PrimaryContact(ctx, anon)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestAddContact_PrimaryDemotesOthers(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()
	current := models.ContactList{{ID: "old", Name: "Mom", Phone: "1", Relationship: models.RelationshipFamily, IsPrimary: true}}
	expected := models.ContactList{
		{ID: "old", Name: "Mom", Phone: "1", Relationship: models.RelationshipFamily},
		{ID: "c1", Name: "Sis", Phone: "2", Relationship: models.RelationshipFamily, IsPrimary: true},
	}

	gomock.InOrder(
		repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(current, nil),
		repoMock.EXPECT().WriteField(ctx, "user-1", models.FieldEmergencyContacts, expected).Return(nil),
		repoMock.EXPECT().SetContactsCache(ctx, "user-1", expected).Return(nil),
		listenerMock.EXPECT().OnContactListChanged("user-1", expected),
	)

	list, err := service.AddContact(ctx, testIdentity, models.ContactFields{
		Name: "Sis", Phone: "2", Relationship: models.RelationshipFamily, IsPrimary: true,
	})

	require.NoError(t, err)
	assert.Equal(t, expected, list)
	assert.Equal(t, 1, list.PrimaryCount())
	// исходный список не изменился
	assert.True(t, current[0].IsPrimary)
}

func TestAddContact_WriteFailureKeepsList(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(models.ContactList{}, nil)
	repoMock.EXPECT().WriteField(ctx, "user-1", models.FieldEmergencyContacts, gomock.Any()).Return(errors.New("permission denied"))
	// OnContactListChanged и кеш не вызываются: gomock упадёт на неожиданном вызове
	listenerMock.EXPECT().OnContactError("user-1", models.KindStorageFailure, gomock.Any()).Times(1)

	_, err := service.AddContact(ctx, testIdentity, models.ContactFields{Name: "Mom"})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorageFailure)
}

func TestAddContact_CacheRefreshFailureInvalidates(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(models.ContactList{}, nil)
	repoMock.EXPECT().WriteField(ctx, "user-1", models.FieldEmergencyContacts, gomock.Any()).Return(nil)
	repoMock.EXPECT().SetContactsCache(ctx, "user-1", gomock.Any()).Return(errors.New("redis down"))
	repoMock.EXPECT().InvalidateContactsCache(ctx, "user-1").Return(nil)
	listenerMock.EXPECT().OnContactListChanged("user-1", gomock.Any())

	list, err := service.AddContact(ctx, testIdentity, models.ContactFields{Name: "Mom"})

	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEditContact_Success(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()
	current := models.ContactList{
		{ID: "a", Name: "Mom", Phone: "1", IsPrimary: true},
		{ID: "b", Name: "Sis", Phone: "2"},
	}
	expected := models.ContactList{
		{ID: "a", Name: "Mom", Phone: "1"},
		{ID: "b", Name: "Sister", Phone: "3", Relationship: models.RelationshipFamily, IsPrimary: true},
	}

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(current, nil)
	repoMock.EXPECT().WriteField(ctx, "user-1", models.FieldEmergencyContacts, expected).Return(nil)
	repoMock.EXPECT().SetContactsCache(ctx, "user-1", expected).Return(nil)
	listenerMock.EXPECT().OnContactListChanged("user-1", expected)

	list, err := service.EditContact(ctx, testIdentity, "b", models.ContactFields{
		Name: "Sister", Phone: "3", Relationship: models.RelationshipFamily, IsPrimary: true,
	})

	require.NoError(t, err)
	assert.Equal(t, expected, list)
}

func TestEditContact_NotFound(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(models.ContactList{{ID: "a"}}, nil)
	listenerMock.EXPECT().OnContactError("user-1", models.KindNotFound, gomock.Any())

	_, err := service.EditContact(ctx, testIdentity, "missing", models.ContactFields{Name: "X"})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteContact_PrimaryLeavesNone(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()
	current := models.ContactList{
		{ID: "a", Name: "Mom", IsPrimary: true},
		{ID: "b", Name: "Sis"},
	}
	expected := models.ContactList{{ID: "b", Name: "Sis"}}

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(current, nil)
	repoMock.EXPECT().WriteField(ctx, "user-1", models.FieldEmergencyContacts, expected).Return(nil)
	repoMock.EXPECT().SetContactsCache(ctx, "user-1", expected).Return(nil)
	listenerMock.EXPECT().OnContactListChanged("user-1", expected)

	list, err := service.DeleteContact(ctx, testIdentity, "a")

	require.NoError(t, err)
	assert.Equal(t, expected, list)
	assert.Equal(t, 0, list.PrimaryCount())
}

func TestDeleteContact_NotFound(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(models.ContactList{{ID: "a"}}, nil)
	listenerMock.EXPECT().OnContactError("user-1", models.KindNotFound, gomock.Any())

	_, err := service.DeleteContact(ctx, testIdentity, "missing")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteContact_StorageFailure(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(models.ContactList{{ID: "a"}}, nil)
	repoMock.EXPECT().WriteField(ctx, "user-1", models.FieldEmergencyContacts, models.ContactList{}).Return(errors.New("timeout"))
	listenerMock.EXPECT().OnContactError("user-1", models.KindStorageFailure, gomock.Any())

	_, err := service.DeleteContact(ctx, testIdentity, "a")

	assert.ErrorIs(t, err, models.ErrStorageFailure)
}

func TestPrimaryContact(t *testing.T) {
	service, repoMock, _ := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(models.ContactList{
		{ID: "a", Name: "Mom"},
		{ID: "b", Name: "Sis", IsPrimary: true},
	}, nil)

	primary, err := service.PrimaryContact(ctx, testIdentity)

	require.NoError(t, err)
	require.NotNil(t, primary)
	assert.Equal(t, "b", primary.ID)
}

func TestPrimaryContact_None(t *testing.T) {
	service, repoMock, _ := newTestContactService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").Return(models.ContactList{{ID: "a"}}, nil)

	primary, err := service.PrimaryContact(ctx, testIdentity)

	require.NoError(t, err)
	assert.Nil(t, primary)
}

// Mom, затем Sis основной, затем Mom снова основной
func TestContactService_PrimaryHandOff(t *testing.T) {
	service, repoMock, listenerMock := newTestContactService(t)
	ctx := context.Background()

	var stored models.ContactList
	repoMock.EXPECT().GetContactsFromCache(ctx, "user-1").DoAndReturn(
		func(context.Context, string) (models.ContactList, error) {
			if stored == nil {
				return models.ContactList{}, nil
			}
			return stored, nil
		}).AnyTimes()
	repoMock.EXPECT().WriteField(ctx, "user-1", models.FieldEmergencyContacts, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, value any) error {
			stored = value.(models.ContactList)
			return nil
		}).AnyTimes()
	repoMock.EXPECT().SetContactsCache(ctx, "user-1", gomock.Any()).Return(nil).AnyTimes()
	listenerMock.EXPECT().OnContactListChanged("user-1", gomock.Any()).Times(3)

	_, err := service.AddContact(ctx, testIdentity, models.ContactFields{Name: "Mom", Phone: "1", Relationship: models.RelationshipFamily, IsPrimary: true})
	require.NoError(t, err)
	_, err = service.AddContact(ctx, testIdentity, models.ContactFields{Name: "Sis", Phone: "2", Relationship: models.RelationshipFamily, IsPrimary: true})
	require.NoError(t, err)

	require.Len(t, stored, 2)
	assert.False(t, stored[0].IsPrimary)
	assert.True(t, stored[1].IsPrimary)

	list, err := service.EditContact(ctx, testIdentity, "c1", models.ContactFields{Name: "Mom", Phone: "1", Relationship: models.RelationshipFamily, IsPrimary: true})
	require.NoError(t, err)
	assert.True(t, list[0].IsPrimary)
	assert.False(t, list[1].IsPrimary)
	assert.Equal(t, 1, list.PrimaryCount())
}
