package ledger

import (
	"context"
	"time"

	"goldvault/internal/domain"

	"github.com/sirupsen/logrus"
)

// requireAdmin gates every approval transition. The role lives on the
// caller's identity record, not inside the balance logic, so the engine
// stays callable from any surface that can produce a User.
func requireAdmin(admin *domain.User) error {
	if admin == nil || !admin.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// requirePending rejects transitions out of a terminal state
func requirePending(status string) error {
	if status != domain.RequestPending {
		return ErrInvalidState
	}
	return nil
}

// stamp records the deciding admin and time on a request
func stamp(adminID uint, approvedBy **uint, approvedAt **time.Time) {
	id := adminID
	now := time.Now()
	*approvedBy = &id
	*approvedAt = &now
}

// ApproveDeposit credits the requester's cash balance and marks the request
// APPROVED, atomically. A deposit approval never fails for balance reasons.
func (e *Engine) ApproveDeposit(ctx context.Context, admin *domain.User, id uint) (*domain.DepositRequest, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	var dep *domain.DepositRequest
	err := e.store.InTx(ctx, func(s Store) error {
		var err error
		dep, err = s.DepositForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := requirePending(dep.Status); err != nil {
			return err
		}
		wallet, err := s.WalletForUpdate(ctx, dep.UserID)
		if err != nil {
			return err
		}
		wallet.CashBalance = wallet.CashBalance.Add(dep.Amount)
		if err := s.SaveWallet(ctx, wallet); err != nil {
			return err
		}
		dep.Status = domain.RequestApproved
		stamp(admin.ID, &dep.ApprovedByID, &dep.ApprovedAt)
		return s.SaveDeposit(ctx, dep)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"deposit_id": dep.ID,
		"user_id":    dep.UserID,
		"admin_id":   admin.ID,
		"amount":     dep.Amount.String(),
	}).Info("Deposit approved")
	return dep, nil
}

// RejectDeposit marks the request REJECTED; the wallet is untouched
func (e *Engine) RejectDeposit(ctx context.Context, admin *domain.User, id uint) (*domain.DepositRequest, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	var dep *domain.DepositRequest
	err := e.store.InTx(ctx, func(s Store) error {
		var err error
		dep, err = s.DepositForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := requirePending(dep.Status); err != nil {
			return err
		}
		dep.Status = domain.RequestRejected
		stamp(admin.ID, &dep.ApprovedByID, &dep.ApprovedAt)
		return s.SaveDeposit(ctx, dep)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"deposit_id": dep.ID,
		"admin_id":   admin.ID,
	}).Info("Deposit rejected")
	return dep, nil
}

// ApproveWithdrawal debits the requester's cash balance and marks the
// request APPROVED. With insufficient balance the transaction rolls back
// and the request stays PENDING, so the admin can retry once funds exist.
func (e *Engine) ApproveWithdrawal(ctx context.Context, admin *domain.User, id uint) (*domain.WithdrawalRequest, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	var wd *domain.WithdrawalRequest
	err := e.store.InTx(ctx, func(s Store) error {
		var err error
		wd, err = s.WithdrawalForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := requirePending(wd.Status); err != nil {
			return err
		}
		wallet, err := s.WalletForUpdate(ctx, wd.UserID)
		if err != nil {
			return err
		}
		if wallet.CashBalance.LessThan(wd.Amount) {
			return ErrInsufficientFunds
		}
		wallet.CashBalance = wallet.CashBalance.Sub(wd.Amount)
		if err := s.SaveWallet(ctx, wallet); err != nil {
			return err
		}
		wd.Status = domain.RequestApproved
		stamp(admin.ID, &wd.ApprovedByID, &wd.ApprovedAt)
		return s.SaveWithdrawal(ctx, wd)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"withdrawal_id": wd.ID,
		"user_id":       wd.UserID,
		"admin_id":      admin.ID,
		"amount":        wd.Amount.String(),
	}).Info("Withdrawal approved")
	return wd, nil
}

// RejectWithdrawal marks the request REJECTED; the wallet is untouched
func (e *Engine) RejectWithdrawal(ctx context.Context, admin *domain.User, id uint) (*domain.WithdrawalRequest, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	var wd *domain.WithdrawalRequest
	err := e.store.InTx(ctx, func(s Store) error {
		var err error
		wd, err = s.WithdrawalForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := requirePending(wd.Status); err != nil {
			return err
		}
		wd.Status = domain.RequestRejected
		stamp(admin.ID, &wd.ApprovedByID, &wd.ApprovedAt)
		return s.SaveWithdrawal(ctx, wd)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"withdrawal_id": wd.ID,
		"admin_id":      admin.ID,
	}).Info("Withdrawal rejected")
	return wd, nil
}

// ApproveGoldLock moves the locked amount out of the requester's holdings
// and marks the lock APPROVED. With insufficient holdings the lock stays
// PENDING. Nothing releases locked gold afterwards: maturation is not
// implemented.
func (e *Engine) ApproveGoldLock(ctx context.Context, admin *domain.User, id uint) (*domain.GoldLock, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	var lock *domain.GoldLock
	err := e.store.InTx(ctx, func(s Store) error {
		var err error
		lock, err = s.GoldLockForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := requirePending(lock.Status); err != nil {
			return err
		}
		wallet, err := s.WalletForUpdate(ctx, lock.UserID)
		if err != nil {
			return err
		}
		if wallet.GoldHoldings.LessThan(lock.Amount) {
			return ErrInsufficientHoldings
		}
		wallet.GoldHoldings = wallet.GoldHoldings.Sub(lock.Amount)
		if err := s.SaveWallet(ctx, wallet); err != nil {
			return err
		}
		lock.Status = domain.RequestApproved
		stamp(admin.ID, &lock.ApprovedByID, &lock.ApprovedAt)
		return s.SaveGoldLock(ctx, lock)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"lock_id":  lock.ID,
		"user_id":  lock.UserID,
		"admin_id": admin.ID,
		"amount":   lock.Amount.String(),
	}).Info("Gold lock approved")
	return lock, nil
}

// RejectGoldLock marks the lock REJECTED; holdings are untouched
func (e *Engine) RejectGoldLock(ctx context.Context, admin *domain.User, id uint) (*domain.GoldLock, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	var lock *domain.GoldLock
	err := e.store.InTx(ctx, func(s Store) error {
		var err error
		lock, err = s.GoldLockForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := requirePending(lock.Status); err != nil {
			return err
		}
		lock.Status = domain.RequestRejected
		stamp(admin.ID, &lock.ApprovedByID, &lock.ApprovedAt)
		return s.SaveGoldLock(ctx, lock)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"lock_id":  lock.ID,
		"admin_id": admin.ID,
	}).Info("Gold lock rejected")
	return lock, nil
}
