package Controllers_test

import (
	"os"
	"testing"

	"github.com/foodshare/foodshare-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}
