// Package models defines the core domain models for the group ledger.
//
// # Event Log and Projections
//
// The group's state is one aggregate root, GroupData, holding:
//   - Append-only event collections: PaymentRecord, LoanIssuedRecord,
//     InterestRateChangeRecord, AdminPayment, MiscPayment
//   - Content collections: MeetingNote, Notification
//   - Mutable projections: Member and GroupSettings
//
// Member.CurrentLoanPrincipal is a projection of the loan and payment events.
// It is recomputed from the event log by the calculator package after every
// mutation and is never edited directly.
//
// # Design Principles
//
// 1. **Foreign keys only**: Records reference members by MemberID, never by pointer,
// so cascade deletes stay mechanical
// 2. **Exact money**: All amounts and rates are decimal.Decimal
// 3. **Versioned schema**: GroupData carries SchemaVersion; default-filling happens
// once at load time in the storage package
package models
