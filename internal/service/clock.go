package service

import "time"

// timeNow is swapped out in tests that pin the order-number date.
var timeNow = time.Now
