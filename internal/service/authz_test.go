package service

import (
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	staff := actorWith(supplyClaim(common.RoleGeneralStaff))

	require.NoError(t, authorize(staff, common.RoleGeneralStaff, common.RoleHeadOfUnit))
	require.ErrorIs(t, authorize(staff, common.RoleAdmin), ErrForbidden)
	require.ErrorIs(t, authorize(actorWith(), common.RoleGeneralStaff), ErrForbidden)
}

func TestAuthorize_SuperAdminBypass(t *testing.T) {
	admin := actorWith(deptClaim(common.RoleSuperAdmin, "REGISTRY"))

	require.NoError(t, authorize(admin, common.RoleAdmin))
	require.NoError(t, authorizeDept(admin, common.SupplyDeptCode, common.RoleHeadOfUnit))
}

func TestAuthorize_DelegatedClaimGrantsAuthority(t *testing.T) {
	actor := actorWith(deptClaim(common.RoleGuest, "REGISTRY"))
	actor.DelegatedRoles = []entity.RoleClaim{supplyClaim(common.RoleHeadOfUnit)}

	require.NoError(t, authorize(actor, common.RoleHeadOfUnit))
	require.True(t, isSupplyHead(actor))
}

func TestAuthorizeDept_ScopesByDepartmentCode(t *testing.T) {
	outsideHead := actorWith(deptClaim(common.RoleHeadOfUnit, "FINANCE"))

	require.ErrorIs(t, authorizeDept(outsideHead, common.SupplyDeptCode, common.RoleHeadOfUnit), ErrForbidden)
	require.NoError(t, authorize(outsideHead, common.RoleHeadOfUnit))

	supplyHead := actorWith(supplyClaim(common.RoleHeadOfUnit))
	require.NoError(t, authorizeDept(supplyHead, common.SupplyDeptCode, common.RoleHeadOfUnit))
}

func TestIsSupplyHead(t *testing.T) {
	require.True(t, isSupplyHead(actorWith(supplyClaim(common.RoleHeadOfDepartment))))
	require.True(t, isSupplyHead(actorWith(supplyClaim(common.RoleHeadOfUnit))))
	require.False(t, isSupplyHead(actorWith(supplyClaim(common.RoleGeneralStaff))))
	require.False(t, isSupplyHead(actorWith(deptClaim(common.RoleHeadOfUnit, "FINANCE"))))
	require.True(t, isSupplyHead(actorWith(deptClaim(common.RoleSuperAdmin, "FINANCE"))))
}

func TestDelegationActiveAt(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	dayBefore := now.AddDate(0, 0, -1)
	dayAfter := now.AddDate(0, 0, 1)

	cases := []struct {
		name       string
		delegation entity.Delegation
		want       bool
	}{
		{"inside window", entity.Delegation{IsActive: true, StartDate: dayBefore, EndDate: &dayAfter}, true},
		{"open ended", entity.Delegation{IsActive: true, StartDate: dayBefore}, true},
		{"not started yet", entity.Delegation{IsActive: true, StartDate: dayAfter}, false},
		{"already ended", entity.Delegation{IsActive: true, StartDate: dayBefore.AddDate(0, 0, -5), EndDate: &dayBefore}, false},
		{"cancelled", entity.Delegation{IsActive: false, StartDate: dayBefore, EndDate: &dayAfter}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, delegationActiveAt(&tc.delegation, now))
		})
	}
}

func TestUnitIdsForActor_Distinct(t *testing.T) {
	claim := supplyClaim(common.RoleGeneralStaff)
	other := supplyClaim(common.RoleHeadOfUnit)
	noUnit := deptClaim(common.RoleFinanceStaff, "FINANCE")

	actor := actorWith(claim, claim, other, noUnit)

	ids := unitIdsForActor(actor)
	require.Len(t, ids, 2)
	require.Contains(t, ids, claim.UnitId)
	require.Contains(t, ids, other.UnitId)
}
