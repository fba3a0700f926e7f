// Package timezone holds the application timezone used to decide what "today" is
// for the slot matrix and which booking windows have already ended.
//
// The zone is read from APP_TIMEZONE when the package is first imported and falls
// back to UTC. Use standard IANA names such as "Asia/Jakarta" or "Europe/London".
//
//	now := timezone.Now()
//	day := timezone.Day(now)                     // "2024-01-01"
//	end := timezone.At(now, 10, 0)               // 10:00 on the same calendar day
//	t, err := timezone.ParseDay("2024-01-01")
package timezone
