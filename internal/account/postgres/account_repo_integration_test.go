// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package postgres_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/signup/internal/account"
	"github.com/holomush/signup/internal/account/postgres"
)

var _ = Describe("AccountRepository", func() {
	var (
		ctx  context.Context
		repo *postgres.AccountRepository
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = postgres.NewAccountRepository(testPool)
		_, err := testPool.Exec(ctx, `DELETE FROM accounts`)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		It("persists the account verbatim", func() {
			acc, err := repo.Save(ctx, account.CreationData{
				Name:     "valid_name",
				Email:    "valid_email@mail.com",
				Password: "hashed-string",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(acc.ID).NotTo(BeEmpty())

			stored, err := repo.GetByID(ctx, acc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal(acc))
		})

		It("rejects a duplicate email regardless of case", func() {
			_, err := repo.Save(ctx, account.CreationData{Name: "a", Email: "Ada@Example.com", Password: "x"})
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Save(ctx, account.CreationData{Name: "b", Email: "ada@example.com", Password: "y"})
			Expect(err).To(MatchError(account.ErrEmailTaken))

			var count int
			Expect(testPool.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&count)).To(Succeed())
			Expect(count).To(Equal(1))
		})
	})

	Describe("GetByID", func() {
		It("returns ErrNotFound for unknown IDs", func() {
			_, err := repo.GetByID(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
			Expect(err).To(MatchError(account.ErrNotFound))
		})
	})
})
