package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/SscSPs/cari_ledger/internal/core/services"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type GroupServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memStore
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemStore()
}

func (suite *GroupServiceTestSuite) TestCreateGroup() {
	svc := services.NewGroupService(suite.store, suite.store)

	group, err := svc.CreateGroup(suite.ctx, dto.GroupRequest{Name: "  Retail  "}, testUserID)
	suite.Require().NoError(err)
	suite.Equal("Retail", group.Name)
	suite.NotEmpty(group.GroupID)

	fetched, err := svc.GetGroupByID(suite.ctx, group.GroupID)
	suite.Require().NoError(err)
	suite.Equal(group.Name, fetched.Name)
}

func (suite *GroupServiceTestSuite) TestCreateGroup_Validation() {
	svc := services.NewGroupService(suite.store, suite.store)

	for _, name := range []string{"", "   ", "x", strings.Repeat("g", 101)} {
		_, err := svc.CreateGroup(suite.ctx, dto.GroupRequest{Name: name}, testUserID)
		suite.ErrorIs(err, apperrors.ErrValidation, "name %q", name)
	}
}

func (suite *GroupServiceTestSuite) TestDuplicateNamesAreCaseSensitive() {
	svc := services.NewGroupService(suite.store, suite.store)

	_, err := svc.CreateGroup(suite.ctx, dto.GroupRequest{Name: "Retail"}, testUserID)
	suite.Require().NoError(err)

	_, err = svc.CreateGroup(suite.ctx, dto.GroupRequest{Name: "Retail"}, testUserID)
	suite.ErrorIs(err, apperrors.ErrDuplicateName)

	_, err = svc.CreateGroup(suite.ctx, dto.GroupRequest{Name: "retail"}, testUserID)
	suite.NoError(err)
}

func (suite *GroupServiceTestSuite) TestUpdateGroup() {
	svc := services.NewGroupService(suite.store, suite.store)

	a, err := svc.CreateGroup(suite.ctx, dto.GroupRequest{Name: "North"}, testUserID)
	suite.Require().NoError(err)
	_, err = svc.CreateGroup(suite.ctx, dto.GroupRequest{Name: "South"}, testUserID)
	suite.Require().NoError(err)

	renamed, err := svc.UpdateGroup(suite.ctx, a.GroupID, dto.GroupRequest{Name: "North"}, testUserID)
	suite.Require().NoError(err, "keeping the same name is allowed")
	suite.Equal("North", renamed.Name)

	_, err = svc.UpdateGroup(suite.ctx, a.GroupID, dto.GroupRequest{Name: "South"}, testUserID)
	suite.ErrorIs(err, apperrors.ErrDuplicateName)

	renamed, err = svc.UpdateGroup(suite.ctx, a.GroupID, dto.GroupRequest{Name: "East"}, "user-2")
	suite.Require().NoError(err)
	suite.Equal("East", renamed.Name)
	suite.Equal("user-2", renamed.LastUpdatedBy)

	_, err = svc.UpdateGroup(suite.ctx, "missing", dto.GroupRequest{Name: ""}, testUserID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GroupServiceTestSuite) TestDeleteGroupGuard() {
	c := services.NewServiceContainer(suite.store.provider(), nil, nil)

	group, err := c.Group.CreateGroup(suite.ctx, dto.GroupRequest{Name: "Guarded"}, testUserID)
	suite.Require().NoError(err)
	first, err := c.Account.CreateAccount(suite.ctx, dto.AccountRequest{Name: "Member One", GroupID: group.GroupID}, testUserID)
	suite.Require().NoError(err)
	second, err := c.Account.CreateAccount(suite.ctx, dto.AccountRequest{Name: "Member Two", GroupID: group.GroupID}, testUserID)
	suite.Require().NoError(err)

	linked, err := c.Group.CountLinkedAccounts(suite.ctx, group.GroupID)
	suite.Require().NoError(err)
	suite.EqualValues(2, linked)

	err = c.Group.DeleteGroup(suite.ctx, group.GroupID)
	suite.ErrorIs(err, apperrors.ErrHasDependents)

	// reassign one, remove the other
	_, err = c.Account.UpdateAccount(suite.ctx, first.AccountID, dto.AccountRequest{Name: "Member One"}, testUserID)
	suite.Require().NoError(err)
	suite.Require().NoError(c.Account.DeleteAccount(suite.ctx, second.AccountID, testUserID))

	suite.Require().NoError(c.Group.DeleteGroup(suite.ctx, group.GroupID))

	_, err = c.Group.GetGroupByID(suite.ctx, group.GroupID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	err = c.Group.DeleteGroup(suite.ctx, group.GroupID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GroupServiceTestSuite) TestDeleteGroupCountsUnderRowLock() {
	c := services.NewServiceContainer(suite.store.provider(), nil, nil)

	group, err := c.Group.CreateGroup(suite.ctx, dto.GroupRequest{Name: "Serialized"}, testUserID)
	suite.Require().NoError(err)
	member, err := c.Account.CreateAccount(suite.ctx, dto.AccountRequest{Name: "Joiner", GroupID: group.GroupID}, testUserID)
	suite.Require().NoError(err)

	suite.store.events = nil
	rollbacks := suite.store.rollbacks
	err = c.Group.DeleteGroup(suite.ctx, group.GroupID)
	suite.ErrorIs(err, apperrors.ErrHasDependents)
	suite.Equal([]string{"lock group " + group.GroupID, "count accounts " + group.GroupID}, suite.store.events)
	suite.Equal(rollbacks+1, suite.store.rollbacks)

	suite.Require().NoError(c.Account.DeleteAccount(suite.ctx, member.AccountID, testUserID))
	commits := suite.store.commits
	suite.Require().NoError(c.Group.DeleteGroup(suite.ctx, group.GroupID))
	suite.Equal(commits+1, suite.store.commits)

	// An account write that arrives after the delete sees the group gone.
	_, err = c.Account.CreateAccount(suite.ctx, dto.AccountRequest{Name: "Latecomer", GroupID: group.GroupID}, testUserID)
	suite.ErrorIs(err, apperrors.ErrGroupNotFound)
}

func (suite *GroupServiceTestSuite) TestListGroupsSortedByName() {
	svc := services.NewGroupService(suite.store, suite.store)
	for _, name := range []string{"Gamma", "Alpha", "Beta"} {
		_, err := svc.CreateGroup(suite.ctx, dto.GroupRequest{Name: name}, testUserID)
		suite.Require().NoError(err)
	}

	groups, err := svc.ListGroups(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(groups, 3)
	suite.Equal([]string{"Alpha", "Beta", "Gamma"}, []string{groups[0].Name, groups[1].Name, groups[2].Name})
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
