package pnw

import "fmt"

// nationFields is the field set requested for every nation, requester or candidate
const nationFields = `
          id
          nation_name
          score
          soldiers
          tanks
          aircraft
          ships
          missiles
          nukes
          spies
          color
          vacation_mode_turns
          beige_turns
          alliance_id
          gross_national_income
          cities {
            infrastructure
            supermarket
            bank
            shopping_mall
            stadium
            subway
          }
          wars {
            id
            turns_left
            date
            def_id
            attacks {
              def_id
              money_stolen
              date
            }
          }
          defensive_wars_count
          alliance {
            id
            name
            treaties {
              alliance1_id
              alliance2_id
              treaty_type
              treaty_url
            }
          }`

func nationByIDQuery(nationID int) string {
	return fmt.Sprintf(`{
      nations(id: %d, first: 1) {
        data {%s
        }
      }
    }`, nationID, nationFields)
}

func nationsPageQuery(page, pageSize int) string {
	return fmt.Sprintf(`{
      nations(page: %d, first: %d) {
        data {%s
        }
        paginatorInfo {
          hasMorePages
          currentPage
        }
      }
    }`, page, pageSize, nationFields)
}
